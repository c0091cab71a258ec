package cache

import (
	"context"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// InvalidationRequest describes what a mutation changed. Flags are
// independent and may be combined.
type InvalidationRequest struct {
	Product bool `json:"product,omitempty"`
	Order   bool `json:"order,omitempty"`
	Admin   bool `json:"admin,omitempty"`

	UserID     string   `json:"userId,omitempty"`
	OrderID    string   `json:"orderId,omitempty"`
	ProductIDs []string `json:"productIds,omitempty"`
}

// Keys returns every key the request makes stale.
//
//	Product: latest-products, categories, all-products, product-{id} per id
//	Order:   all-orders, my-orders-{UserID}, order-{OrderID}
//	Admin:   admin-stats, admin-pie-charts, admin-bar-charts, admin-line-charts
//
// Order keys are built even when UserID or OrderID is empty.
func (r InvalidationRequest) Keys() []string {
	var keys []string

	if r.Product {
		keys = append(keys, productListKeys...)
		for _, id := range r.ProductIDs {
			keys = append(keys, ProductKey(id))
		}
	}

	if r.Order {
		keys = append(keys, KeyAllOrders, MyOrdersKey(r.UserID), OrderKey(r.OrderID))
	}

	if r.Admin {
		keys = append(keys, adminKeys...)
	}

	return keys
}

// IsZero reports whether the request has no flag set.
func (r InvalidationRequest) IsZero() bool {
	return !r.Product && !r.Order && !r.Admin
}

// Broadcaster forwards invalidations to other instances sharing the data store.
type Broadcaster interface {
	Broadcast(ctx context.Context, req InvalidationRequest) error
}

// Invalidator deletes stale keys after a committed mutation.
type Invalidator struct {
	store       interfaces.Cache
	logger      interfaces.Logger
	metrics     *Metrics
	broadcaster Broadcaster
}

// NewInvalidator creates an invalidator over store.
func NewInvalidator(store interfaces.Cache, logger interfaces.Logger) *Invalidator {
	return &Invalidator{store: store, logger: logger}
}

// WithMetrics counts invalidations per flag.
func (i *Invalidator) WithMetrics(m *Metrics) *Invalidator {
	i.metrics = m
	return i
}

// WithBroadcaster fans every invalidation out to peers after it is applied
// locally.
func (i *Invalidator) WithBroadcaster(b Broadcaster) *Invalidator {
	i.broadcaster = b
	return i
}

// Invalidate deletes the request's keys from the local store and, when a
// broadcaster is configured, forwards the request to peers. It returns once
// the local deletion is done.
func (i *Invalidator) Invalidate(ctx context.Context, req InvalidationRequest) {
	i.Apply(ctx, req)

	if i.broadcaster == nil || req.IsZero() {
		return
	}
	if err := i.broadcaster.Broadcast(ctx, req); err != nil {
		i.logger.Warn("Failed to broadcast cache invalidation",
			interfaces.Any("request", req),
			interfaces.Error(err))
	}
}

// Apply deletes the request's keys from the local store only.
func (i *Invalidator) Apply(ctx context.Context, req InvalidationRequest) {
	keys := req.Keys()
	if len(keys) == 0 {
		return
	}

	i.store.Delete(ctx, keys...)
	i.record(req)

	i.logger.Debug("Cache invalidated", interfaces.Strings("keys", keys))
}

func (i *Invalidator) record(req InvalidationRequest) {
	if i.metrics == nil {
		return
	}
	if req.Product {
		i.metrics.Invalidations.WithLabelValues("product").Inc()
	}
	if req.Order {
		i.metrics.Invalidations.WithLabelValues("order").Inc()
	}
	if req.Admin {
		i.metrics.Invalidations.WithLabelValues("admin").Inc()
	}
}
