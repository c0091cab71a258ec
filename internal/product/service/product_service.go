package service

import (
	"context"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/product/domain"
	"github.com/narwhalmedia/storefront/internal/product/repository"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/validation"
)

const latestLimit = 5

// PhotoStorage persists product photos and hands back the reference stored
// on the product.
type PhotoStorage interface {
	Store(ctx context.Context, name string, reader io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Photo is an uploaded image.
type Photo struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// CreateInput carries the fields of a new product.
type CreateInput struct {
	Name     string  `form:"name" validate:"required"`
	Price    float64 `form:"price" validate:"gt=0"`
	Stock    int     `form:"stock" validate:"gte=0"`
	Category string  `form:"category" validate:"required"`
}

// UpdateInput carries the fields to change. Nil fields are left as they are.
type UpdateInput struct {
	Name     *string  `form:"name" validate:"omitempty,min=1"`
	Price    *float64 `form:"price" validate:"omitempty,gt=0"`
	Stock    *int     `form:"stock" validate:"omitempty,gte=0"`
	Category *string  `form:"category" validate:"omitempty,min=1"`
}

// SearchResult is one page of a product search.
type SearchResult struct {
	Products  []*domain.Product `json:"products"`
	TotalPage int               `json:"totalPage"`
}

// ProductService handles catalog operations.
type ProductService struct {
	repo        repository.Repository
	photos      PhotoStorage
	cache       interfaces.Cache
	invalidator *cache.Invalidator
	publisher   interfaces.EventPublisher
	logger      interfaces.Logger
	perPage     int
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.Repository,
	photos PhotoStorage,
	store interfaces.Cache,
	invalidator *cache.Invalidator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
	perPage int,
) *ProductService {
	if perPage <= 0 {
		perPage = 8
	}
	return &ProductService{
		repo:        repo,
		photos:      photos,
		cache:       store,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
		perPage:     perPage,
	}
}

// CreateProduct stores the photo and creates the product. The photo is
// removed again when the fields do not validate.
func (s *ProductService) CreateProduct(ctx context.Context, input CreateInput, photo *Photo) (*domain.Product, error) {
	if photo == nil {
		return nil, errors.BadRequest("Please add Photo")
	}

	ref, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	if err := validation.Struct(input); err != nil {
		s.removePhoto(ctx, ref)
		return nil, err
	}

	product := &domain.Product{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(input.Name),
		Photo:    ref,
		Price:    input.Price,
		Stock:    input.Stock,
		Category: domain.NormalizeCategory(input.Category),
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.removePhoto(ctx, ref)
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{Product: true, Admin: true})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.ProductCreated, product.ID, map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	}))

	s.logger.Info("Product created",
		interfaces.String("product_id", product.ID),
		interfaces.String("category", product.Category))

	return product, nil
}

// UpdateProduct applies a partial update, replacing the photo when a new
// one is given.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input UpdateInput, photo *Photo) (*domain.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPhoto := ""
	if photo != nil {
		ref, err := s.storePhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		oldPhoto = product.Photo
		product.Photo = ref
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = domain.NormalizeCategory(*input.Category)
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if photo != nil {
			s.removePhoto(ctx, product.Photo)
		}
		return nil, err
	}

	if oldPhoto != "" {
		s.removePhoto(ctx, oldPhoto)
	}

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{product.ID},
	})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.ProductUpdated, product.ID, nil))

	return product, nil
}

// DeleteProduct removes the product and its photo.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.removePhoto(ctx, product.Photo)

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{id},
	})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.ProductDeleted, id, nil))

	s.logger.Info("Product deleted", interfaces.String("product_id", id))
	return nil
}

// LatestProducts returns the five newest products.
func (s *ProductService) LatestProducts(ctx context.Context) ([]*domain.Product, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyLatestProducts, func(ctx context.Context) ([]*domain.Product, error) {
		return s.repo.ListLatest(ctx, latestLimit)
	})
}

// Categories returns the distinct product categories.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyCategories, func(ctx context.Context) ([]string, error) {
		return s.repo.ListCategories(ctx)
	})
}

// AdminProducts returns every product.
func (s *ProductService) AdminProducts(ctx context.Context) ([]*domain.Product, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAllProducts, func(ctx context.Context) ([]*domain.Product, error) {
		return s.repo.ListProducts(ctx)
	})
}

// GetProduct returns a single product.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return cache.ReadThrough(ctx, s.cache, cache.ProductKey(id), func(ctx context.Context) (*domain.Product, error) {
		return s.repo.GetProduct(ctx, id)
	})
}

// Search returns one page of products matching filter. Search results are
// never cached.
func (s *ProductService) Search(ctx context.Context, filter domain.SearchFilter) (*SearchResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PerPage = s.perPage

	products, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Products:  products,
		TotalPage: TotalPages(total, s.perPage),
	}, nil
}

// TotalPages is ceil(count / perPage).
func TotalPages(count int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(perPage)))
}

func (s *ProductService) storePhoto(ctx context.Context, photo *Photo) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(photo.Filename))
	ref, err := s.photos.Store(ctx, name, photo.Content, photo.ContentType)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeInternal, "failed to store photo", err)
	}
	return ref, nil
}

func (s *ProductService) removePhoto(ctx context.Context, ref string) {
	if err := s.photos.Delete(ctx, ref); err != nil {
		s.logger.Warn("Failed to remove photo",
			interfaces.String("photo", ref),
			interfaces.Error(err))
	}
}
