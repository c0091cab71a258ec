package events

import (
	"context"
	"sync"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// InMemoryEventBus delivers events to handlers in the publishing goroutine.
// It is the publisher used when no external broker is configured.
type InMemoryEventBus struct {
	mu     sync.RWMutex
	byType map[string][]interfaces.EventHandler
	logger interfaces.Logger
}

// NewInMemoryEventBus creates an empty bus
func NewInMemoryEventBus(logger interfaces.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		byType: make(map[string][]interfaces.EventHandler),
		logger: logger,
	}
}

// Subscribe registers handler for eventType, or for every type when
// eventType is Wildcard
func (b *InMemoryEventBus) Subscribe(eventType string, handler interfaces.EventHandler) error {
	b.mu.Lock()
	b.byType[eventType] = append(b.byType[eventType], handler)
	b.mu.Unlock()

	b.logger.Debug("Event handler subscribed", interfaces.String("event_type", eventType))
	return nil
}

// Publish runs the typed handlers, then the wildcard ones. A failing handler
// is logged and the rest still run, so Publish never returns a handler error.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interfaces.Event) error {
	for _, handler := range b.handlersFor(event.EventType()) {
		if err := handler.Handle(ctx, event); err != nil {
			b.logger.Error("Event handler failed",
				interfaces.String("event_type", event.EventType()),
				interfaces.String("aggregate_id", event.AggregateID()),
				interfaces.Error(err))
		}
	}
	return nil
}

func (b *InMemoryEventBus) handlersFor(eventType string) []interfaces.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed, all := b.byType[eventType], b.byType[Wildcard]
	handlers := make([]interfaces.EventHandler, 0, len(typed)+len(all))
	handlers = append(handlers, typed...)
	return append(handlers, all...)
}
