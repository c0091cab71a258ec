package events

import (
	"context"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// PublishOrLog publishes the event and logs a failure instead of returning
// it. Domain events never fail the mutation that produced them.
func PublishOrLog(ctx context.Context, publisher interfaces.EventPublisher, logger interfaces.Logger, event interfaces.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			interfaces.String("event_type", event.EventType()),
			interfaces.String("aggregate_id", event.AggregateID()),
			interfaces.Error(err))
	}
}
