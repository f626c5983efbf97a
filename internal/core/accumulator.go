package core

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ChunkReader yields streamed chunks until io.EOF. *openai.ChatCompletionStream
// satisfies it.
type ChunkReader interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
}

type callSlot struct {
	id        strings.Builder
	name      strings.Builder
	arguments strings.Builder
	touched   bool
}

// Accumulator rebuilds the text and the tool calls of one streamed reply.
// Fragments for the same index are concatenated in arrival order.
type Accumulator struct {
	text         strings.Builder
	slots        []*callSlot
	finishReason openai.FinishReason
	chunks       int
}

// Add merges one chunk. Chunks without choices or deltas are no-ops.
func (a *Accumulator) Add(chunk openai.ChatCompletionStreamResponse) {
	a.chunks++
	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]
	if choice.FinishReason != "" {
		a.finishReason = choice.FinishReason
	}

	delta := choice.Delta
	if delta.Content != "" {
		a.text.WriteString(delta.Content)
	}

	for _, fragment := range delta.ToolCalls {
		index := 0
		if fragment.Index != nil {
			index = *fragment.Index
		}
		if index < 0 {
			continue
		}
		// Indices normally arrive one at a time; a jump still gets its own slot.
		for len(a.slots) <= index {
			a.slots = append(a.slots, &callSlot{})
		}
		slot := a.slots[index]
		slot.touched = true
		slot.id.WriteString(fragment.ID)
		slot.name.WriteString(fragment.Function.Name)
		slot.arguments.WriteString(fragment.Function.Arguments)
	}
}

func (a *Accumulator) Text() string {
	return a.text.String()
}

// ToolCalls returns the finished calls in index order. Slots no fragment ever
// addressed are dropped.
func (a *Accumulator) ToolCalls() []openai.ToolCall {
	calls := make([]openai.ToolCall, 0, len(a.slots))
	for _, slot := range a.slots {
		if !slot.touched {
			continue
		}
		calls = append(calls, openai.ToolCall{
			ID:   slot.id.String(),
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      slot.name.String(),
				Arguments: slot.arguments.String(),
			},
		})
	}
	return calls
}

func (a *Accumulator) FinishReason() openai.FinishReason {
	return a.finishReason
}

// Chunks reports how many chunks were merged.
func (a *Accumulator) Chunks() int {
	return a.chunks
}

// Collect drains stream into the accumulator. onChunk, when set, sees every
// chunk before it is merged.
func (a *Accumulator) Collect(ctx context.Context, stream ChunkReader, onChunk func(openai.ChatCompletionStreamResponse)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if onChunk != nil {
			onChunk(chunk)
		}
		a.Add(chunk)
	}
}
