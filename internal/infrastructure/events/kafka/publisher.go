package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// Message is the Kafka payload for a domain event
type Message struct {
	ID          string           `json:"id,omitempty"`
	AggregateID string           `json:"aggregate_id"`
	EventType   string           `json:"event_type"`
	CreatedAt   time.Time        `json:"created_at"`
	Data        interfaces.Event `json:"data"`
}

// Publisher implements interfaces.EventPublisher
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewPublisher creates a new Kafka event publisher
func NewPublisher(brokers []string, topic string, logger *zap.Logger) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("creating producer: %w", err)
	}

	return NewPublisherWithProducer(producer, topic, logger), nil
}

// NewProducerConfig returns the producer settings used by the publisher
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	return config
}

// NewPublisherWithProducer creates a publisher over an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka-publisher"),
	}
}

// Publish publishes an event to Kafka keyed by its aggregate id
func (p *Publisher) Publish(ctx context.Context, event interfaces.Event) error {
	message := &Message{
		AggregateID: event.AggregateID(),
		EventType:   event.EventType(),
		CreatedAt:   time.Unix(0, event.Timestamp()).UTC(),
		Data:        event,
	}
	if e, ok := event.(interface{ EventID() string }); ok {
		message.ID = e.EventID()
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(event.EventType()),
			},
		},
	}

	partition, offset, err := p.producer.SendMessage(kafkaMsg)
	if err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_type", event.EventType()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.producer.Close()
}
