package repository

import (
	"context"

	"github.com/narwhalmedia/storefront/internal/payment/domain"
)

// Repository defines persistence operations for coupons.
type Repository interface {
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id string) (*domain.Coupon, error)
}
