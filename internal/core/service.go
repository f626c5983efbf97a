package core

import (
	"context"
	"fmt"
	"log"

	"github.com/Rorical/RoriFunc/internal/tools"
	"github.com/sashabaranov/go-openai"
)

// Completer is the part of *openai.Client the service needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateChatCompletionStream(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error)
}

// Options configure every request a Service sends.
type Options struct {
	Model          string
	Temperature    float32
	TopP           float32
	MaxTokens      int
	ToolChoice     any // defaults to "auto" whenever tools are offered
	ResponseFormat *openai.ChatCompletionResponseFormat
	Stream         bool
	// MaxToolRounds bounds how many rounds may be answered with tool calls in
	// one turn. Zero means one: the reply to the tool results is final.
	MaxToolRounds int
}

func (o Options) toolRounds() int {
	if o.MaxToolRounds <= 0 {
		return 1
	}
	return o.MaxToolRounds
}

// Hooks observe a turn as it runs. None of them affects the protocol.
type Hooks struct {
	OnChunk      func(chunk openai.ChatCompletionStreamResponse)
	OnText       func(delta string)
	OnToolCall   func(call openai.ToolCall)
	OnToolResult func(call openai.ToolCall, result string)
}

func (h Hooks) chunk(c openai.ChatCompletionStreamResponse) {
	if h.OnChunk != nil {
		h.OnChunk(c)
	}
}

func (h Hooks) text(delta string) {
	if h.OnText != nil && delta != "" {
		h.OnText(delta)
	}
}

func (h Hooks) toolCall(call openai.ToolCall) {
	if h.OnToolCall != nil {
		h.OnToolCall(call)
	}
}

func (h Hooks) toolResult(call openai.ToolCall, result string) {
	if h.OnToolResult != nil {
		h.OnToolResult(call, result)
	}
}

type TurnKind int

const (
	TurnEmpty TurnKind = iota
	TurnText
	TurnToolCalls
)

func (k TurnKind) String() string {
	switch k {
	case TurnText:
		return "text"
	case TurnToolCalls:
		return "tool_calls"
	}
	return "empty"
}

// TurnResult describes a resolved turn.
type TurnResult struct {
	Kind         TurnKind
	Text         string
	Calls        []openai.ToolCall // executed, in order
	Dropped      []openai.ToolCall // returned by the final round and ignored
	ToolRounds   int
	FinishReason openai.FinishReason
}

// Service drives chat turns against a model with a fixed tool registry.
type Service struct {
	client   Completer
	registry *tools.Registry
	opts     Options
}

func NewService(client Completer, registry *tools.Registry, opts Options) *Service {
	return &Service{
		client:   client,
		registry: registry,
		opts:     opts,
	}
}

func (s *Service) Options() Options {
	return s.opts
}

func (s *Service) Registry() *tools.Registry {
	return s.registry
}

// Turn appends the user's message and resolves the model's answer.
func (s *Service) Turn(ctx context.Context, conv *Conversation, userInput string, hooks Hooks) (*TurnResult, error) {
	conv.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userInput,
	})
	return s.Resolve(ctx, conv, hooks)
}

// Resolve sends the log and follows tool calls until a round answers with
// text. Tools are offered for the first MaxToolRounds rounds only, so the
// round after the limit must answer in text; tool calls it still returns are
// dropped.
func (s *Service) Resolve(ctx context.Context, conv *Conversation, hooks Hooks) (*TurnResult, error) {
	result := &TurnResult{}
	limit := s.opts.toolRounds()

	for round := 0; ; round++ {
		offerTools := round < limit && s.registry != nil && s.registry.Len() > 0

		rep, err := s.complete(ctx, s.request(conv.Messages(), offerTools), hooks)
		if err != nil {
			return nil, err
		}
		result.FinishReason = rep.finishReason

		if len(rep.toolCalls) == 0 || !offerTools {
			if len(rep.toolCalls) > 0 {
				log.Printf("ignoring %d tool call(s) from round %d: tool round limit %d reached", len(rep.toolCalls), round+1, limit)
				result.Dropped = rep.toolCalls
			}
			result.Text = rep.text
			if rep.text != "" {
				conv.Append(openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: rep.text,
				})
			}
			result.Kind = turnKind(result)
			return result, nil
		}

		executed, err := s.runToolCalls(ctx, conv, rep, hooks)
		if err != nil {
			return nil, err
		}
		result.Calls = append(result.Calls, executed...)
		result.ToolRounds++
	}
}

func turnKind(r *TurnResult) TurnKind {
	switch {
	case r.ToolRounds > 0:
		return TurnToolCalls
	case r.Text != "":
		return TurnText
	}
	return TurnEmpty
}

func (s *Service) request(messages []openai.ChatCompletionMessage, offerTools bool) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:          s.opts.Model,
		Messages:       messages,
		Temperature:    s.opts.Temperature,
		TopP:           s.opts.TopP,
		MaxTokens:      s.opts.MaxTokens,
		ResponseFormat: s.opts.ResponseFormat,
	}
	if offerTools {
		req.Tools = s.registry.OpenAITools()
		req.ToolChoice = s.opts.ToolChoice
		if req.ToolChoice == nil {
			req.ToolChoice = "auto"
		}
	}
	return req
}

type reply struct {
	text         string
	toolCalls    []openai.ToolCall
	finishReason openai.FinishReason
}

func (s *Service) complete(ctx context.Context, req openai.ChatCompletionRequest, hooks Hooks) (reply, error) {
	if s.client == nil {
		return reply{}, ErrNoClient
	}

	if !s.opts.Stream {
		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return reply{}, fmt.Errorf("chat completion request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return reply{}, ErrNoChoices
		}
		choice := resp.Choices[0]
		hooks.text(choice.Message.Content)
		return reply{
			text:         choice.Message.Content,
			toolCalls:    choice.Message.ToolCalls,
			finishReason: choice.FinishReason,
		}, nil
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return reply{}, fmt.Errorf("chat completion stream failed: %w", err)
	}
	defer stream.Close()

	acc := &Accumulator{}
	err = acc.Collect(ctx, stream, func(chunk openai.ChatCompletionStreamResponse) {
		hooks.chunk(chunk)
		if len(chunk.Choices) > 0 {
			hooks.text(chunk.Choices[0].Delta.Content)
		}
	})
	if err != nil {
		return reply{}, fmt.Errorf("reading chat completion stream: %w", err)
	}
	return reply{
		text:         acc.Text(),
		toolCalls:    acc.ToolCalls(),
		finishReason: acc.FinishReason(),
	}, nil
}
