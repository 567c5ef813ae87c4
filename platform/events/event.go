// Package events provides the in-process event bus that fans signal, score,
// and stage changes out to interested modules without coupling them directly.
package events

import (
	"context"
	"time"
)

// Event is implemented by everything published on the bus, from recorded
// engagement signals to score recomputes and stage transitions.
type Event interface {
	// EventName identifies the event type, e.g. "signals.recorded".
	EventName() string
	// OccurredAt returns when the change happened.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by every bus event.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the change happened.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to a published event, for example mailing a reply alert
// when a classification flags human review.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to the handlers subscribed to their name.
type Bus interface {
	// Publish delivers the event to its subscribers without blocking the
	// caller. Handlers run asynchronously.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event and waits for every handler, joining
	// their errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the name an Event reports through
	// EventName().
	Subscribe(eventName string, handler Handler)
}
