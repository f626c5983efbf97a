package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

// scripted is one canned answer of the fake model. Chunks are sent as an SSE
// stream; otherwise resp is sent as a plain JSON body.
type scripted struct {
	chunks []openai.ChatCompletionStreamResponse
	resp   *openai.ChatCompletionResponse
	status int
}

// fakeModel is a chat completions endpoint that answers requests in order
// and records what it was sent.
type fakeModel struct {
	t        *testing.T
	mu       sync.Mutex
	replies  []scripted
	requests []openai.ChatCompletionRequest
	server   *httptest.Server
}

func newFakeModel(t *testing.T, replies ...scripted) *fakeModel {
	t.Helper()
	f := &fakeModel{t: t, replies: replies}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeModel) client() *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = f.server.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func (f *fakeModel) sent() []openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]openai.ChatCompletionRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeModel) serve(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	n := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if n >= len(f.replies) {
		writeAPIError(w, http.StatusInternalServerError, fmt.Sprintf("unexpected request #%d", n+1))
		return
	}
	rep := f.replies[n]

	switch {
	case rep.status != 0:
		writeAPIError(w, rep.status, "upstream exploded")
	case rep.resp != nil:
		w.Header().Set("Content-Type", "application/json")
		require.NoError(f.t, json.NewEncoder(w).Encode(rep.resp))
	default:
		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range rep.chunks {
			data, err := json.Marshal(chunk)
			require.NoError(f.t, err)
			fmt.Fprintf(w, "data: %s\n\n", data)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":{"message":%q,"type":"server_error"}}`, message)
}

func streamed(chunks ...openai.ChatCompletionStreamResponse) scripted {
	return scripted{chunks: chunks}
}

func answered(msg openai.ChatCompletionMessage, reason openai.FinishReason) scripted {
	return scripted{resp: &openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Model:  "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Message:      msg,
			FinishReason: reason,
		}},
	}}
}

func callMessage(calls ...openai.ToolCall) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, ToolCalls: calls}
}

func textMessage(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}
}

func functionCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:       id,
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: args},
	}
}
