// Package events carries domain events between modules without direct
// coupling. A module publishes the lifecycle facts it produces, such as
// a quotation being created or finalized, and interested modules react
// by subscribing to the event name.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event carried on the bus.
type Event interface {
	// EventName identifies the event type, e.g. "quotation.finalized".
	EventName() string
	// OccurredAt reports when the event happened.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by every event type.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt reports when the event happened.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to events it has been subscribed to.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle invokes the wrapped function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus routes published events to the handlers subscribed under their
// event name.
type Bus interface {
	// Publish delivers the event to its subscribers without waiting
	// for them to finish.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event and waits for every handler,
	// collecting handler errors into one.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under the name an event reports
	// from EventName.
	Subscribe(eventName string, handler Handler)
}
