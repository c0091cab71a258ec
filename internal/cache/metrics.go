package cache

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// Metrics holds the cache Prometheus collectors.
type Metrics struct {
	Hits          *prometheus.CounterVec
	Misses        *prometheus.CounterVec
	Sets          prometheus.Counter
	Deletes       prometheus.Counter
	Invalidations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of cache hits by key family",
		}, []string{"family"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of cache misses by key family",
		}, []string{"family"}),
		Sets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cache",
			Name:      "sets_total",
			Help:      "Total number of cache writes",
		}),
		Deletes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cache",
			Name:      "deleted_keys_total",
			Help:      "Total number of keys passed to delete",
		}),
		Invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Total number of invalidation requests by flag",
		}, []string{"flag"}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Sets, m.Deletes, m.Invalidations)
	return m
}

// InstrumentedStore records hit and miss counts for another store.
type InstrumentedStore struct {
	next    interfaces.Cache
	metrics *Metrics
}

// NewInstrumentedStore wraps next.
func NewInstrumentedStore(next interfaces.Cache, metrics *Metrics) *InstrumentedStore {
	return &InstrumentedStore{next: next, metrics: metrics}
}

// Has reports whether key is present and counts the lookup.
func (s *InstrumentedStore) Has(ctx context.Context, key string) bool {
	ok := s.next.Has(ctx, key)
	if ok {
		s.metrics.Hits.WithLabelValues(Family(key)).Inc()
	} else {
		s.metrics.Misses.WithLabelValues(Family(key)).Inc()
	}
	return ok
}

// Get returns the value stored under key.
func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, bool) {
	return s.next.Get(ctx, key)
}

// Set stores value under key.
func (s *InstrumentedStore) Set(ctx context.Context, key, value string) {
	s.metrics.Sets.Inc()
	s.next.Set(ctx, key, value)
}

// Delete removes keys.
func (s *InstrumentedStore) Delete(ctx context.Context, keys ...string) {
	s.metrics.Deletes.Add(float64(len(keys)))
	s.next.Delete(ctx, keys...)
}

// Family collapses templated keys to their prefix so that metric label
// cardinality stays bounded.
func Family(key string) string {
	for _, prefix := range []string{myOrdersKeyPrefix, productKeyPrefix, orderKeyPrefix} {
		if strings.HasPrefix(key, prefix) {
			return prefix + "{id}"
		}
	}
	return key
}
