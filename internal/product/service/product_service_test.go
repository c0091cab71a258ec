package service_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/product/domain"
	"github.com/narwhalmedia/storefront/internal/product/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/logger"
	"github.com/narwhalmedia/storefront/test/mocks"
	"github.com/narwhalmedia/storefront/test/testutil"
)

type ProductServiceTestSuite struct {
	suite.Suite

	ctx      context.Context
	mockRepo *mocks.ProductRepository
	photos   *mocks.PhotoStorage
	store    *cache.MemoryStore
	events   *testutil.EventRecorder
	service  *service.ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(mocks.ProductRepository)
	suite.photos = new(mocks.PhotoStorage)
	suite.store = cache.NewMemoryStore()
	suite.events = testutil.NewEventRecorder()

	suite.service = service.NewProductService(
		suite.mockRepo,
		suite.photos,
		suite.store,
		cache.NewInvalidator(suite.store, logger.NewNoop()),
		suite.events,
		logger.NewNoop(),
		8,
	)
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.photos.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) fillCache() {
	for _, key := range []string{
		cache.KeyLatestProducts, cache.KeyCategories, cache.KeyAllProducts,
		cache.KeyAdminStats, cache.KeyAllOrders, cache.ProductKey("p1"),
	} {
		suite.store.Set(suite.ctx, key, "[]")
	}
}

func photo() *service.Photo {
	return &service.Photo{Filename: "shoe.JPG", ContentType: "image/jpeg", Content: strings.NewReader("img")}
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	// Arrange
	suite.fillCache()
	suite.photos.On("Store", suite.ctx, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, ".jpg")
	}), mock.Anything, "image/jpeg").Return("uploads/x.jpg", nil)
	suite.mockRepo.On("CreateProduct", suite.ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	// Act
	product, err := suite.service.CreateProduct(suite.ctx, service.CreateInput{
		Name: "Running Shoe", Price: 120, Stock: 4, Category: " Footwear ",
	}, photo())

	// Assert
	suite.Require().NoError(err)
	suite.Equal("footwear", product.Category)
	suite.Equal("uploads/x.jpg", product.Photo)
	suite.False(suite.store.Has(suite.ctx, cache.KeyLatestProducts))
	suite.False(suite.store.Has(suite.ctx, cache.KeyCategories))
	suite.False(suite.store.Has(suite.ctx, cache.KeyAllProducts))
	suite.False(suite.store.Has(suite.ctx, cache.KeyAdminStats))
	suite.True(suite.store.Has(suite.ctx, cache.KeyAllOrders))
	suite.True(suite.store.Has(suite.ctx, cache.ProductKey("p1")))
	suite.Equal([]string{events.ProductCreated}, suite.events.Types())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NoPhoto() {
	// Act
	_, err := suite.service.CreateProduct(suite.ctx, service.CreateInput{Name: "x"}, nil)

	// Assert
	suite.True(errors.IsBadRequest(err))
	suite.Equal("Please add Photo", errors.PublicMessage(err))
}

func (suite *ProductServiceTestSuite) TestCreateProduct_InvalidFieldsRemovesPhoto() {
	// Arrange
	suite.fillCache()
	suite.photos.On("Store", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return("uploads/x.jpg", nil)
	suite.photos.On("Delete", suite.ctx, "uploads/x.jpg").Return(nil)

	// Act
	_, err := suite.service.CreateProduct(suite.ctx, service.CreateInput{Name: "Shoe"}, photo())

	// Assert
	suite.True(errors.IsBadRequest(err))
	suite.True(suite.store.Has(suite.ctx, cache.KeyLatestProducts), "nothing is invalidated on failure")
	suite.Empty(suite.events.Types())
}

func (suite *ProductServiceTestSuite) TestGetProduct_CachedAfterFirstRead() {
	// Arrange
	product := testutil.CreateTestProduct("Lamp", "home", 30, 2)
	suite.mockRepo.On("GetProduct", suite.ctx, product.ID).Return(product, nil).Once()

	// Act
	first, err1 := suite.service.GetProduct(suite.ctx, product.ID)
	second, err2 := suite.service.GetProduct(suite.ctx, product.ID)

	// Assert
	suite.Require().NoError(err1)
	suite.Require().NoError(err2)
	suite.Equal(first.Name, second.Name)
	suite.True(suite.store.Has(suite.ctx, cache.ProductKey(product.ID)))
}

func (suite *ProductServiceTestSuite) TestGetProduct_NotFoundIsNotCached() {
	// Arrange
	suite.mockRepo.On("GetProduct", suite.ctx, "missing").Return(nil, errors.NotFound("Product not found"))

	// Act
	_, err := suite.service.GetProduct(suite.ctx, "missing")

	// Assert
	suite.True(errors.IsNotFound(err))
	suite.False(suite.store.Has(suite.ctx, cache.ProductKey("missing")))
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_ReplacesPhotoAndInvalidates() {
	// Arrange
	suite.fillCache()
	product := testutil.CreateTestProduct("Lamp", "home", 30, 2)
	product.ID = "p1"
	product.Photo = "uploads/old.jpg"
	suite.mockRepo.On("GetProduct", suite.ctx, "p1").Return(product, nil)
	suite.mockRepo.On("UpdateProduct", suite.ctx, product).Return(nil)
	suite.photos.On("Store", suite.ctx, mock.Anything, mock.Anything, mock.Anything).Return("uploads/new.jpg", nil)
	suite.photos.On("Delete", suite.ctx, "uploads/old.jpg").Return(nil)

	price := 45.0
	category := "Lighting"

	// Act
	updated, err := suite.service.UpdateProduct(suite.ctx, "p1", service.UpdateInput{Price: &price, Category: &category}, photo())

	// Assert
	suite.Require().NoError(err)
	suite.Equal(45.0, updated.Price)
	suite.Equal("lighting", updated.Category)
	suite.Equal("uploads/new.jpg", updated.Photo)
	suite.Equal("Lamp", updated.Name)
	suite.False(suite.store.Has(suite.ctx, cache.ProductKey("p1")))
	suite.False(suite.store.Has(suite.ctx, cache.KeyAdminStats))
	suite.Equal([]string{events.ProductUpdated}, suite.events.Types())
}

func (suite *ProductServiceTestSuite) TestDeleteProduct() {
	// Arrange
	suite.fillCache()
	product := testutil.CreateTestProduct("Lamp", "home", 30, 2)
	product.ID = "p1"
	suite.mockRepo.On("GetProduct", suite.ctx, "p1").Return(product, nil)
	suite.mockRepo.On("DeleteProduct", suite.ctx, "p1").Return(nil)
	suite.photos.On("Delete", suite.ctx, product.Photo).Return(stderrors.New("disk gone"))

	// Act
	err := suite.service.DeleteProduct(suite.ctx, "p1")

	// Assert
	suite.Require().NoError(err, "photo cleanup failures are only logged")
	suite.False(suite.store.Has(suite.ctx, cache.ProductKey("p1")))
	suite.False(suite.store.Has(suite.ctx, cache.KeyCategories))
	suite.Equal([]string{events.ProductDeleted}, suite.events.Types())
}

func (suite *ProductServiceTestSuite) TestSearch_Pagination() {
	// Arrange
	filter := domain.SearchFilter{Search: "shoe", Page: 0}
	expected := filter
	expected.Page = 1
	expected.PerPage = 8
	suite.mockRepo.On("Search", suite.ctx, expected).Return([]*domain.Product{}, int64(17), nil)

	// Act
	result, err := suite.service.Search(suite.ctx, filter)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(3, result.TotalPage)
	suite.Zero(suite.store.Len(), "search results are never cached")
}

func (suite *ProductServiceTestSuite) TestLatestAndCategoriesAreCached() {
	// Arrange
	suite.mockRepo.On("ListLatest", suite.ctx, 5).Return([]*domain.Product{}, nil).Once()
	suite.mockRepo.On("ListCategories", suite.ctx).Return([]string{"home"}, nil).Once()
	suite.mockRepo.On("ListProducts", suite.ctx).Return([]*domain.Product{}, nil).Once()

	// Act
	for i := 0; i < 2; i++ {
		_, err := suite.service.LatestProducts(suite.ctx)
		suite.Require().NoError(err)
		categories, err := suite.service.Categories(suite.ctx)
		suite.Require().NoError(err)
		suite.Equal([]string{"home"}, categories)
		_, err = suite.service.AdminProducts(suite.ctx)
		suite.Require().NoError(err)
	}

	// Assert
	suite.Equal(3, suite.store.Len())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, service.TotalPages(0, 8))
	assert.Equal(t, 1, service.TotalPages(8, 8))
	assert.Equal(t, 2, service.TotalPages(9, 8))
	assert.Equal(t, 0, service.TotalPages(5, 0))
}
