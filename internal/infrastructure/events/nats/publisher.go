package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// Publisher implements the EventPublisher interface using NATS JetStream
type Publisher struct {
	js     jetstream.JetStream
	logger *zap.Logger
}

// NewPublisher creates a new NATS event publisher
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		js:     client.JetStream(),
		logger: logger.Named("publisher"),
	}
}

// EventEnvelope wraps an event with metadata for transport
type EventEnvelope struct {
	ID          string           `json:"id,omitempty"`
	AggregateID string           `json:"aggregate_id"`
	EventType   string           `json:"event_type"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Data        interfaces.Event `json:"data"`
}

type identified interface {
	EventID() string
}

// NewEnvelope wraps event for transport
func NewEnvelope(event interfaces.Event) EventEnvelope {
	envelope := EventEnvelope{
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		OccurredAt:  time.Unix(0, event.Timestamp()).UTC(),
		Data:        event,
	}
	if e, ok := event.(identified); ok {
		envelope.ID = e.EventID()
	}
	return envelope
}

// Publish publishes a domain event. The subject is the event type.
func (p *Publisher) Publish(ctx context.Context, event interfaces.Event) error {
	envelope := NewEnvelope(event)
	subject := event.EventType()

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	var pubOpts []jetstream.PublishOpt
	if envelope.ID != "" {
		pubOpts = append(pubOpts, jetstream.WithMsgID(envelope.ID))
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ack, err := p.js.Publish(pubCtx, subject, data, pubOpts...)
	if err != nil {
		p.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("event_id", envelope.ID),
			zap.String("event_type", envelope.EventType),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_id", envelope.ID),
		zap.String("event_type", envelope.EventType),
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)

	return nil
}
