package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/order/domain"
	"github.com/narwhalmedia/storefront/internal/order/handler"
	"github.com/narwhalmedia/storefront/internal/order/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/logger"
	"github.com/narwhalmedia/storefront/test/mocks"
	"github.com/narwhalmedia/storefront/test/testutil"
)

const placeOrderBody = `{
	"shippingInfo": {"address": "1 Main St", "city": "Pune", "state": "MH", "country": "India", "pinCode": 411001},
	"orderItems": [{"productId": "p1", "name": "Phone", "photo": "uploads/p1.jpg", "price": 500, "quantity": 2}],
	"user": "u1",
	"subtotal": 1000,
	"total": 1000
}`

type OrderHTTPTestSuite struct {
	suite.Suite

	users    *mocks.UserRepository
	orders   *mocks.OrderRepository
	products *mocks.ProductRepository
	store    *cache.MemoryStore
	router   http.Handler
}

func (suite *OrderHTTPTestSuite) SetupTest() {
	suite.users = new(mocks.UserRepository)
	suite.orders = new(mocks.OrderRepository)
	suite.products = new(mocks.ProductRepository)
	suite.store = cache.NewMemoryStore()

	svc := service.NewOrderService(
		suite.orders,
		suite.products,
		suite.store,
		cache.NewInvalidator(suite.store, logger.NewNoop()),
		testutil.NewEventRecorder(),
		logger.NewNoop(),
	)

	suite.router = httpapi.NewRouter(httpapi.Options{
		Logger:         logger.NewNoop(),
		AllowedOrigins: []string{"*"},
		Users:          suite.users,
	}, handler.NewHTTPHandler(svc))
}

func (suite *OrderHTTPTestSuite) TearDownTest() {
	suite.users.AssertExpectations(suite.T())
	suite.orders.AssertExpectations(suite.T())
	suite.products.AssertExpectations(suite.T())
}

func (suite *OrderHTTPTestSuite) do(method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func (suite *OrderHTTPTestSuite) TestPlaceOrder() {
	// Arrange
	suite.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)
	suite.products.On("ReduceStock", mock.Anything, mock.Anything).Return(nil)

	// Act
	rec, body := suite.do(http.MethodPost, "/api/v1/order/new", placeOrderBody)

	// Assert
	suite.Equal(http.StatusCreated, rec.Code)
	suite.Equal("Order Placed Successfully", body["message"])
}

func (suite *OrderHTTPTestSuite) TestPlaceOrder_MissingShippingInfoTouchesNothing() {
	// Arrange
	suite.store.Set(context.Background(), cache.KeyAllOrders, "[]")
	payload := `{
		"orderItems": [{"productId": "p1", "name": "Phone", "photo": "uploads/p1.jpg", "price": 500, "quantity": 2}],
		"user": "u1",
		"subtotal": 1000,
		"total": 1000
	}`

	// Act
	rec, body := suite.do(http.MethodPost, "/api/v1/order/new", payload)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal(false, body["success"])
	suite.True(suite.store.Has(context.Background(), cache.KeyAllOrders))
}

func (suite *OrderHTTPTestSuite) TestPlaceOrder_MalformedBody() {
	// Act
	rec, body := suite.do(http.MethodPost, "/api/v1/order/new", `{"user": `)

	// Assert
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Equal("Invalid request body", body["message"])
}

func (suite *OrderHTTPTestSuite) TestMyOrders_Cached() {
	// Arrange
	suite.orders.On("ListByUser", mock.Anything, "u1").Return([]*domain.Order{{ID: "o1", UserID: "u1"}}, nil).Once()

	// Act
	first, _ := suite.do(http.MethodGet, "/api/v1/order/my?id=u1", "")
	second, body := suite.do(http.MethodGet, "/api/v1/order/my?id=u1", "")

	// Assert
	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusOK, second.Code)
	suite.Len(body["orders"], 1)
	suite.True(suite.store.Has(context.Background(), cache.MyOrdersKey("u1")))
}

func (suite *OrderHTTPTestSuite) TestGetOrder_NotFound() {
	// Arrange
	suite.orders.On("GetOrder", mock.Anything, "missing").Return(nil, errors.NotFound("Order Not Found"))

	// Act
	rec, body := suite.do(http.MethodGet, "/api/v1/order/missing", "")

	// Assert
	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Equal("Order Not Found", body["message"])
	suite.False(suite.store.Has(context.Background(), cache.OrderKey("missing")))
}

func (suite *OrderHTTPTestSuite) TestProcessOrder_RequiresAdmin() {
	// Arrange
	suite.users.On("GetUser", mock.Anything, "u1").Return(testutil.CreateTestUser("u1", "user"), nil)

	// Act
	rec, body := suite.do(http.MethodPut, "/api/v1/order/o1?id=u1", "")

	// Assert
	suite.Equal(http.StatusForbidden, rec.Code)
	suite.Equal("Admin access prohibited.", body["message"])
}

func (suite *OrderHTTPTestSuite) TestProcessOrder() {
	// Arrange
	suite.users.On("GetUser", mock.Anything, "admin-1").Return(testutil.CreateTestUser("admin-1", "admin"), nil)
	suite.orders.On("GetOrder", mock.Anything, "o1").Return(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusProcessing}, nil)
	suite.orders.On("UpdateStatus", mock.Anything, "o1", domain.StatusShipped).Return(nil)

	// Act
	rec, body := suite.do(http.MethodPut, "/api/v1/order/o1?id=admin-1", "")

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	suite.Equal("Order Processed Successfully", body["message"])
}

func TestOrderHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHTTPTestSuite))
}
