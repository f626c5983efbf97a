package eventbus

import (
	"time"

	"github.com/Rorical/RoriFunc/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// SendMessageEvent asks the session to run a turn for Message.
type SendMessageEvent struct {
	Message string
}

func (e SendMessageEvent) UIEvent() {}

// StateUpdateEvent is a full snapshot of the session. Streaming holds the
// assistant text received so far in the running round.
type StateUpdateEvent struct {
	Messages     []models.Message
	Streaming    string
	IsProcessing bool
	Error        error
}

func (e StateUpdateEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

func (e EventBusError) Unwrap() error {
	return e.Err
}
