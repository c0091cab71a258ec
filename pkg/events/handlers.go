package events

import (
	"context"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc struct {
	Type string
	Fn   func(ctx context.Context, event interfaces.Event) error
}

// Handle calls Fn.
func (h *HandlerFunc) Handle(ctx context.Context, event interfaces.Event) error {
	return h.Fn(ctx, event)
}

// EventType returns the type the handler is registered for.
func (h *HandlerFunc) EventType() string {
	return h.Type
}

// NewAuditHandler returns a wildcard handler that logs every event.
func NewAuditHandler(logger interfaces.Logger) *HandlerFunc {
	return &HandlerFunc{
		Type: Wildcard,
		Fn: func(_ context.Context, event interfaces.Event) error {
			logger.Info("Domain event",
				interfaces.String("event_type", event.EventType()),
				interfaces.String("aggregate_id", event.AggregateID()))
			return nil
		},
	}
}
