package repository

import (
	"context"
	"time"

	"github.com/narwhalmedia/storefront/internal/product/domain"
)

// Repository defines persistence operations for products.
type Repository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListLatest(ctx context.Context, limit int) ([]*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Product, int64, error)

	// ReduceStock applies every change in one transaction
	ReduceStock(ctx context.Context, changes []domain.StockChange) error

	// Dashboard queries
	CountProducts(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.Product, error)
}
