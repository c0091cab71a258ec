package gateway

import (
	"context"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"

	"github.com/narwhalmedia/storefront/pkg/errors"
)

type orders interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Razorpay creates Razorpay orders and hands back the order id.
type Razorpay struct {
	orders orders
	logger *zap.Logger
}

// NewRazorpay creates a Razorpay gateway for the given key pair.
func NewRazorpay(keyID, keySecret string, logger *zap.Logger) *Razorpay {
	return &Razorpay{
		orders: razorpay.NewClient(keyID, keySecret).Order,
		logger: logger,
	}
}

// CreateIntent creates an order for amount minor units of currency. The
// Razorpay SDK does not take a context, so ctx only guards the call start.
func (r *Razorpay) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := r.orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": strings.ToUpper(currency),
	}, nil)
	if err != nil {
		r.logger.Error("Failed to create razorpay order", zap.Int64("amount", amount), zap.Error(err))
		return "", errors.Unavailable("Payment gateway error", fmt.Errorf("razorpay: %w", err))
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return "", errors.Unavailable("Payment gateway error", fmt.Errorf("razorpay: order response without id"))
	}

	r.logger.Info("Razorpay order created", zap.String("order_id", id), zap.Int64("amount", amount))
	return id, nil
}
