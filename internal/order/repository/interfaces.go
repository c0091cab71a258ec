package repository

import (
	"context"
	"time"

	"github.com/narwhalmedia/storefront/internal/order/domain"
)

// Repository defines persistence operations for orders.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	DeleteOrder(ctx context.Context, id string) error

	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)

	// Dashboard queries
	CountOrders(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.Status) (int64, error)
	ListLatest(ctx context.Context, limit int) ([]*domain.Order, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error)
	SumTotals(ctx context.Context) (Totals, error)
}

// Totals aggregates money fields over every order
type Totals struct {
	Subtotal        float64
	Tax             float64
	ShippingCharges float64
	Discount        float64
	Total           float64
}
