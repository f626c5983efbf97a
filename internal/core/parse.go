package core

import (
	"context"
	"fmt"

	"github.com/Rorical/RoriFunc/internal/structured"
	"github.com/sashabaranov/go-openai"
)

// Parse asks for a reply shaped like format and decodes it. Tools are not
// offered. A reply cut by the content filter fails with ErrContentFiltered.
func Parse[T any](ctx context.Context, s *Service, conv *Conversation, format *structured.Format[T]) structured.Result[T] {
	if s.client == nil {
		return structured.Fail[T](ErrNoClient)
	}

	req := s.request(conv.Messages(), false)
	req.ResponseFormat = format.ResponseFormat()

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return structured.Fail[T](fmt.Errorf("chat completion request failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return structured.Fail[T](ErrNoChoices)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return structured.Fail[T](ErrContentFiltered)
	}
	if choice.Message.Refusal != "" {
		return structured.Fail[T](fmt.Errorf("model refused: %s", choice.Message.Refusal))
	}

	result := format.Decode(choice.Message.Content)
	if result.OK() {
		conv.Append(openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: choice.Message.Content,
		})
	}
	return result
}
