package eventbus

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrChannelFull = errors.New("channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// EventBus carries events between the UI and the session. Sends never
// block; a full channel is reported instead.
type EventBus struct {
	mu            sync.RWMutex
	uiToCore      chan UIEvent
	coreToUI      chan CoreEvent
	closed        bool
	errorCallback func(EventBusError)
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, 100),
		coreToUI: make(chan CoreEvent, 100),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) error {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}
	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
	return busError
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToCore", ErrClosed)
	}

	select {
	case eb.uiToCore <- event:
		return nil
	default:
		return eb.reportError("SendToCore", ErrChannelFull)
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("SendToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	default:
		return eb.reportError("SendToUI", ErrChannelFull)
	}
}

// OfferToUI sends event if there is room and reports whether it did. A
// refused offer is not an error; the next snapshot supersedes it.
func (eb *EventBus) OfferToUI(event CoreEvent) bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return false
	}

	select {
	case eb.coreToUI <- event:
		return true
	default:
		return false
	}
}

// DeliverToUI blocks until the UI has room for event or ctx is done.
// Close must not be called while a delivery can still be pending.
func (eb *EventBus) DeliverToUI(ctx context.Context, event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.closed {
		return eb.reportError("DeliverToUI", ErrClosed)
	}

	select {
	case eb.coreToUI <- event:
		return nil
	case <-ctx.Done():
		return eb.reportError("DeliverToUI", ctx.Err())
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

// Close closes both channels. Later sends fail with ErrClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
