// Package seed fills a development database with generated products.
package seed

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/narwhalmedia/storefront/internal/product/domain"
)

// PlaceholderPhoto is the storage key given to every generated product
const PlaceholderPhoto = "uploads/placeholder.jpg"

// Store is the slice of the product repository the seeder needs
type Store interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Generator builds random products created within the past year
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator creates a generator. A zero seed picks a random one.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: time.Now}
}

// Products returns count generated products
func (g *Generator) Products(count int) []*domain.Product {
	now := g.now()
	products := make([]*domain.Product, 0, count)
	for i := 0; i < count; i++ {
		created := g.faker.DateRange(now.AddDate(-1, 0, 0), now)
		products = append(products, &domain.Product{
			ID:        uuid.NewString(),
			Name:      g.faker.ProductName(),
			Photo:     PlaceholderPhoto,
			Price:     math.Round(g.faker.Price(1500, 80000)),
			Stock:     g.faker.IntRange(0, 100),
			Category:  domain.NormalizeCategory(g.faker.ProductCategory()),
			CreatedAt: created,
			UpdatedAt: g.faker.DateRange(created, now),
		})
	}
	return products
}

// Insert generates and stores count products
func Insert(ctx context.Context, store Store, gen *Generator, count int) error {
	for _, product := range gen.Products(count) {
		if err := store.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
		}
	}
	return nil
}

// Prune deletes every product except the keep oldest ones and reports how
// many were removed
func Prune(ctx context.Context, store Store, keep int) (int, error) {
	products, err := store.ListProducts(ctx)
	if err != nil {
		return 0, err
	}

	// newest first
	removable := len(products) - keep
	deleted := 0
	for i := 0; i < removable; i++ {
		if err := store.DeleteProduct(ctx, products[i].ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
