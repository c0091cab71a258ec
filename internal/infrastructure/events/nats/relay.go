package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/internal/cache"
)

// Conn is the part of *nats.Conn the relay uses
type Conn interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
}

// Applier deletes keys locally without rebroadcasting
type Applier interface {
	Apply(ctx context.Context, req cache.InvalidationRequest)
}

type invalidationMessage struct {
	Origin  string                    `json:"origin"`
	Request cache.InvalidationRequest `json:"request"`
}

// InvalidationRelay carries cache invalidations between instances over core
// NATS. Messages carry the sender's instance id and an instance skips its own.
type InvalidationRelay struct {
	conn       Conn
	subject    string
	instanceID string
	logger     *zap.Logger
	sub        *nats.Subscription
}

// NewInvalidationRelay creates a relay publishing on subject
func NewInvalidationRelay(conn Conn, subject, instanceID string, logger *zap.Logger) *InvalidationRelay {
	return &InvalidationRelay{
		conn:       conn,
		subject:    subject,
		instanceID: instanceID,
		logger:     logger.Named("invalidation-relay"),
	}
}

// Broadcast implements cache.Broadcaster
func (r *InvalidationRelay) Broadcast(_ context.Context, req cache.InvalidationRequest) error {
	data, err := json.Marshal(invalidationMessage{Origin: r.instanceID, Request: req})
	if err != nil {
		return fmt.Errorf("failed to marshal invalidation: %w", err)
	}
	if err := r.conn.Publish(r.subject, data); err != nil {
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	return nil
}

// Start applies invalidations received from peers to applier
func (r *InvalidationRelay) Start(ctx context.Context, applier Applier) error {
	sub, err := r.conn.Subscribe(r.subject, func(msg *nats.Msg) {
		var m invalidationMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			r.logger.Warn("dropping malformed invalidation", zap.Error(err))
			return
		}
		if m.Origin == r.instanceID {
			return
		}

		applier.Apply(ctx, m.Request)
		r.logger.Debug("applied peer invalidation", zap.String("origin", m.Origin))
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.subject, err)
	}

	r.sub = sub
	r.logger.Info("invalidation relay started",
		zap.String("subject", r.subject),
		zap.String("instance_id", r.instanceID),
	)
	return nil
}

// Stop unsubscribes from peer invalidations
func (r *InvalidationRelay) Stop() error {
	if r.sub == nil {
		return nil
	}
	return r.sub.Unsubscribe()
}
