package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Rorical/RoriFunc/internal/tools"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

type plannedCall struct {
	call openai.ToolCall
	tool tools.Tool
	args map[string]interface{}
}

// runToolCalls checks every call before any tool runs, then executes them in
// order. The assistant message and the tool results join the log together,
// and only once every call has produced a result.
func (s *Service) runToolCalls(ctx context.Context, conv *Conversation, rep reply, hooks Hooks) ([]openai.ToolCall, error) {
	calls := make([]openai.ToolCall, len(rep.toolCalls))
	for i, call := range rep.toolCalls {
		call.Index = nil
		call.Type = openai.ToolTypeFunction
		if call.ID == "" {
			call.ID = "call_" + uuid.NewString()
		}
		calls[i] = call
	}

	planned, err := s.plan(calls)
	if err != nil {
		return nil, err
	}

	results := make([]openai.ChatCompletionMessage, 0, len(planned))
	for _, p := range planned {
		hooks.toolCall(p.call)
		log.Printf("calling %s(%s) id=%s", p.call.Function.Name, p.call.Function.Arguments, p.call.ID)

		out, err := p.tool.Execute(ctx, p.args)
		if err != nil {
			return nil, fmt.Errorf("tool %s failed: %w", p.call.Function.Name, err)
		}
		log.Printf("%s returned %s", p.call.Function.Name, out)
		hooks.toolResult(p.call, out)

		results = append(results, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    out,
			Name:       p.call.Function.Name,
			ToolCallID: p.call.ID,
		})
	}

	conv.Append(openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   rep.text,
		ToolCalls: calls,
	})
	conv.Append(results...)
	return calls, nil
}

func (s *Service) plan(calls []openai.ToolCall) ([]plannedCall, error) {
	planned := make([]plannedCall, 0, len(calls))
	for _, call := range calls {
		tool, ok := s.registry.Get(call.Function.Name)
		if !ok {
			return nil, &ToolCallError{Kind: ErrUnknownFunction, Call: call}
		}

		args, err := parseArguments(call.Function.Arguments)
		if err != nil {
			return nil, &ToolCallError{Kind: ErrMalformedArguments, Call: call, Err: err}
		}
		if err := tools.CheckArgs(tool, args); err != nil {
			return nil, &ToolCallError{Kind: ErrInvalidArguments, Call: call, Err: err}
		}
		// Values outside the declared schema still reach the tool, which
		// answers them itself ("Invalid operator", "Invalid index").
		if err := s.registry.Validate(call.Function.Name, args); err != nil {
			log.Printf("%s: arguments outside schema: %v", call.Function.Name, err)
		}

		planned = append(planned, plannedCall{call: call, tool: tool, args: args})
	}
	return planned, nil
}

// parseArguments decodes a tool call's arguments, which must be a JSON object.
func parseArguments(raw string) (map[string]interface{}, error) {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		return nil, errors.New("arguments must be a JSON object")
	}
	return args, nil
}
