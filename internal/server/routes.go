package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriFunc/internal/core"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Messages []openai.ChatCompletionMessage `json:"messages"`
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	// standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/chat", s.handleChat)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"uptime":  s.RunTime(),
		"model":   s.svc.Options().Model,
		"started": s.StartTime.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("messages must not be empty"))
		return
	}

	msgs := req.Messages
	if s.conf.SystemPrompt != "" && msgs[0].Role != openai.ChatMessageRoleSystem {
		msgs = append([]openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.conf.SystemPrompt,
		}}, msgs...)
	}
	conv := core.ConversationFrom(msgs)

	ctx := r.Context()
	sw := newStreamWriter(ctx, w, s.svc.Options().Model, s.conf.ChunkDelay)
	_, err := s.svc.Resolve(ctx, conv, core.Hooks{
		OnChunk: sw.observe,
		OnText: func(delta string) {
			sw.send(openai.ChatMessageRoleAssistant, delta)
		},
		OnToolResult: func(_ openai.ToolCall, result string) {
			sw.send(openai.ChatMessageRoleTool, result)
		},
	})
	if err == nil {
		return
	}

	log.Printf("chat request %s failed: %v", middleware.GetReqID(ctx), err)
	if sw.wrote {
		sw.fail(err)
		return
	}
	status := http.StatusBadGateway
	if core.IsTurnFailure(err) {
		status = http.StatusUnprocessableEntity
	}
	writeError(w, status, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
