package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/narwhalmedia/storefront/internal/payment/domain"
	"github.com/narwhalmedia/storefront/pkg/errors"
)

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.Conflict(fmt.Sprintf("Coupon %s already exists", coupon.Code))
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *GormRepository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("coupon not found")
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return &coupon, nil
}

func (r *GormRepository) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	var coupons []*domain.Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

// DeleteCoupon removes a coupon and returns what was deleted
func (r *GormRepository) DeleteCoupon(ctx context.Context, id string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&coupon, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&coupon).Error
	})
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("coupon not found")
		}
		return nil, fmt.Errorf("failed to delete coupon: %w", err)
	}
	return &coupon, nil
}
