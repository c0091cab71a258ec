package gateway

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/pkg/errors"
)

// Gateway is a payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// BreakerConfig configures a circuit breaker around a gateway
type BreakerConfig struct {
	Name        string
	MaxFailures uint32
	Timeout     time.Duration
}

// Breaker stops calling a gateway after consecutive failures and fails fast
// until Timeout has passed.
type Breaker struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker wraps next in a circuit breaker.
func NewBreaker(next Gateway, config BreakerConfig, logger *zap.Logger) *Breaker {
	maxFailures := config.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: 1,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Payment circuit breaker state changed",
				zap.String("gateway", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// client mistakes say nothing about gateway health
			return err == nil || errors.IsBadRequest(err) || stderrors.Is(err, context.Canceled)
		},
	})

	return &Breaker{next: next, cb: cb}
}

// CreateIntent forwards to the wrapped gateway unless the breaker is open.
func (b *Breaker) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.CreateIntent(ctx, amount, currency)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", errors.Unavailable("Payment gateway temporarily unavailable", err)
		}
		return "", err
	}
	return result.(string), nil
}

// State reports the breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
