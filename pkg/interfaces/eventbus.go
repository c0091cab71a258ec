package interfaces

import "context"

// Event is a fact about a committed change to an aggregate.
type Event interface {
	EventType() string
	// Timestamp is the unix time in nanoseconds
	Timestamp() int64
	AggregateID() string
}

// EventHandler reacts to published events.
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
	// EventType is the type the handler was written for, or "*"
	EventType() string
}

// EventPublisher hands events to a bus or broker.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
