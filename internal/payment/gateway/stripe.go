package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/pkg/errors"
)

type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Stripe creates PaymentIntents and hands back their client secret.
type Stripe struct {
	intents paymentIntents
	logger  *zap.Logger
}

// NewStripe creates a Stripe gateway authenticated with secretKey.
func NewStripe(secretKey string, logger *zap.Logger) *Stripe {
	return &Stripe{
		intents: client.New(secretKey, nil).PaymentIntents,
		logger:  logger,
	}
}

// CreateIntent creates a PaymentIntent for amount minor units of currency.
func (s *Stripe) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx

	intent, err := s.intents.New(params)
	if err != nil {
		s.logger.Error("Failed to create payment intent", zap.Int64("amount", amount), zap.Error(err))
		return "", errors.Unavailable("Payment gateway error", fmt.Errorf("stripe: %w", err))
	}

	s.logger.Info("Payment intent created", zap.String("intent_id", intent.ID), zap.Int64("amount", amount))
	return intent.ClientSecret, nil
}
