package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/eventbus"
	"github.com/Rorical/RoriFunc/internal/models"
)

// Session is the core side of the TUI. It runs one turn at a time for the
// messages the UI sends and pushes a snapshot after every change.
type Session struct {
	svc    *core.Service
	conv   *core.Conversation
	bus    *eventbus.EventBus
	intro  []models.Message
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSession(svc *core.Service, conv *core.Conversation, bus *eventbus.EventBus, intro []models.Message) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		svc:    svc,
		conv:   conv,
		bus:    bus,
		intro:  intro,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start pushes the initial state and starts the event loop.
func (s *Session) Start() {
	s.push("", false, nil)
	s.wg.Add(1)
	go s.eventLoop()
}

// Stop cancels a running turn and waits for the loop to exit.
func (s *Session) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Session) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.bus.UIToCore():
			if !ok {
				return
			}
			if e, isSend := event.(eventbus.SendMessageEvent); isSend {
				s.processMessage(e.Message)
			}
		}
	}
}

func (s *Session) processMessage(input string) {
	s.conv.Append(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: input,
	})
	s.push("", true, nil)

	var streaming strings.Builder
	_, err := s.svc.Resolve(s.ctx, s.conv, core.Hooks{
		OnText: func(delta string) {
			streaming.WriteString(delta)
			s.push(streaming.String(), true, nil)
		},
		OnToolResult: func(openai.ToolCall, string) {
			streaming.Reset()
			s.push("", true, nil)
		},
	})
	s.push("", false, err)
}

// push sends a snapshot of the conversation. Snapshots taken while a turn
// is running may be skipped when the UI lags behind; the final one is
// always delivered so the UI leaves the processing state.
func (s *Session) push(streaming string, processing bool, err error) {
	msgs := make([]models.Message, 0, len(s.intro)+s.conv.Len())
	msgs = append(msgs, s.intro...)
	for _, m := range s.conv.DisplayMessages() {
		if m.Type == models.System {
			continue
		}
		msgs = append(msgs, m)
	}

	event := eventbus.StateUpdateEvent{
		Messages:     msgs,
		Streaming:    streaming,
		IsProcessing: processing,
		Error:        err,
	}
	if processing && err == nil {
		s.bus.OfferToUI(event)
		return
	}
	if sendErr := s.bus.DeliverToUI(s.ctx, event); sendErr != nil {
		log.Printf("dropping state update: %v", sendErr)
	}
}
