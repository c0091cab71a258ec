package testutil

import (
	"context"
	"sync"

	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

// EventRecorder is an in-memory event bus that remembers every published
// event type
type EventRecorder struct {
	*events.InMemoryEventBus

	mu    sync.Mutex
	types []string
}

// NewEventRecorder creates a recorder subscribed to every event type
func NewEventRecorder() *EventRecorder {
	r := &EventRecorder{InMemoryEventBus: events.NewInMemoryEventBus(logger.NewNoop())}
	_ = r.Subscribe(events.Wildcard, &events.HandlerFunc{
		Type: events.Wildcard,
		Fn: func(_ context.Context, event interfaces.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.types = append(r.types, event.EventType())
			return nil
		},
	})
	return r
}

// Types returns the recorded event types in publish order
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}
