package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/narwhalmedia/storefront/internal/order/domain"
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

func (r *GormRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GormRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		First(&order, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("Order Not Found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	result := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Order Not Found")
	}
	return nil
}

func (r *GormRepository) DeleteOrder(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.Item{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Delete(&domain.Order{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NotFound("Order Not Found")
		}
		return nil
	})
}

func (r *GormRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

func (r *GormRepository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("User").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GormRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (r *GormRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders by status: %w", err)
	}
	return count, nil
}

func (r *GormRepository) ListLatest(ctx context.Context, limit int) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list latest orders: %w", err)
	}
	return orders, nil
}

func (r *GormRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders by creation date: %w", err)
	}
	return orders, nil
}

func (r *GormRepository) SumTotals(ctx context.Context) (Totals, error) {
	var totals Totals
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(subtotal), 0) AS subtotal, " +
			"COALESCE(SUM(tax), 0) AS tax, " +
			"COALESCE(SUM(shipping_charges), 0) AS shipping_charges, " +
			"COALESCE(SUM(discount), 0) AS discount, " +
			"COALESCE(SUM(total), 0) AS total").
		Scan(&totals).Error
	if err != nil {
		return Totals{}, fmt.Errorf("failed to sum order totals: %w", err)
	}
	return totals, nil
}
