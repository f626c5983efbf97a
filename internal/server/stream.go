package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// StreamChunk is one NDJSON line of a /chat response, the shape chat web
// clients expect.
type StreamChunk struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Created int64          `json:"created"`
	Object  string         `json:"object"`
	Choices []StreamChoice `json:"choices"`
}

type StreamChoice struct {
	Messages []StreamMessage `json:"messages"`
}

type StreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chunkMeta struct {
	id      string
	model   string
	created int64
	object  string
}

// streamWriter turns turn hooks into flushed NDJSON lines.
type streamWriter struct {
	ctx     context.Context
	w       http.ResponseWriter
	flusher http.Flusher
	enc     *json.Encoder
	delay   time.Duration
	meta    chunkMeta
	wrote   bool
	err     error
}

func newStreamWriter(ctx context.Context, w http.ResponseWriter, model string, delay time.Duration) *streamWriter {
	flusher, _ := w.(http.Flusher)
	return &streamWriter{
		ctx:     ctx,
		w:       w,
		flusher: flusher,
		enc:     json.NewEncoder(w),
		delay:   delay,
		meta: chunkMeta{
			id:      "chatcmpl-" + uuid.NewString(),
			model:   model,
			created: time.Now().Unix(),
			object:  "chat.completion.chunk",
		},
	}
}

// observe keeps the envelope of the most recent upstream chunk.
func (s *streamWriter) observe(chunk openai.ChatCompletionStreamResponse) {
	if chunk.ID != "" {
		s.meta.id = chunk.ID
	}
	if chunk.Model != "" {
		s.meta.model = chunk.Model
	}
	if chunk.Created != 0 {
		s.meta.created = chunk.Created
	}
	if chunk.Object != "" {
		s.meta.object = chunk.Object
	}
}

func (s *streamWriter) send(role, content string) {
	if s.err != nil {
		return
	}
	if !s.wrote {
		s.w.Header().Set("Content-Type", "application/x-ndjson")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.WriteHeader(http.StatusOK)
		s.wrote = true
	}

	s.err = s.enc.Encode(StreamChunk{
		ID:      s.meta.id,
		Model:   s.meta.model,
		Created: s.meta.created,
		Object:  s.meta.object,
		Choices: []StreamChoice{{Messages: []StreamMessage{{Role: role, Content: content}}}},
	})
	if s.err != nil {
		return
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-s.ctx.Done():
		}
	}
}

// fail reports err in a trailing line once streaming has begun.
func (s *streamWriter) fail(err error) {
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(map[string]string{"error": err.Error()})
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
