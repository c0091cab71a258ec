package handler_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/dashboard/handler"
	"github.com/narwhalmedia/storefront/internal/dashboard/service"
	"github.com/narwhalmedia/storefront/internal/httpapi"
	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/pkg/logger"
	"github.com/narwhalmedia/storefront/test/mocks"
	"github.com/narwhalmedia/storefront/test/testutil"
)

type DashboardHTTPTestSuite struct {
	suite.Suite

	now      time.Time
	users    *mocks.UserRepository
	products *mocks.ProductRepository
	orders   *mocks.OrderRepository
	store    *cache.MemoryStore
	router   http.Handler
}

func (suite *DashboardHTTPTestSuite) SetupTest() {
	suite.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	suite.users = new(mocks.UserRepository)
	suite.products = new(mocks.ProductRepository)
	suite.orders = new(mocks.OrderRepository)
	suite.store = cache.NewMemoryStore()

	svc := service.NewDashboardService(
		suite.products,
		suite.users,
		suite.orders,
		suite.store,
		logger.NewNoop(),
	).WithClock(func() time.Time { return suite.now })

	suite.router = httpapi.NewRouter(httpapi.Options{
		Logger:         logger.NewNoop(),
		AllowedOrigins: []string{"*"},
		Users:          suite.users,
	}, handler.NewHTTPHandler(svc))
}

func (suite *DashboardHTTPTestSuite) TearDownTest() {
	suite.users.AssertExpectations(suite.T())
	suite.products.AssertExpectations(suite.T())
	suite.orders.AssertExpectations(suite.T())
}

func (suite *DashboardHTTPTestSuite) get(target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var decoded map[string]interface{}
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func (suite *DashboardHTTPTestSuite) asAdmin() {
	suite.users.On("GetUser", mock.Anything, "admin-1").Return(testutil.CreateTestUser("admin-1", "admin"), nil)
}

func (suite *DashboardHTTPTestSuite) TestBarCharts() {
	// Arrange
	suite.asAdmin()
	suite.products.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*productdomain.Product{{ID: "p1", CreatedAt: suite.now}}, nil).Once()
	suite.users.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*userdomain.User{}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*orderdomain.Order{}, nil).Once()

	// Act
	first, body := suite.get("/api/v1/dashboard/bar?id=admin-1")
	second, _ := suite.get("/api/v1/dashboard/bar?id=admin-1")

	// Assert
	suite.Equal(http.StatusOK, first.Code)
	suite.Equal(http.StatusOK, second.Code)
	charts := body["charts"].(map[string]interface{})
	suite.Equal([]interface{}{0.0, 0.0, 0.0, 0.0, 0.0, 1.0}, charts["products"])
	suite.Len(charts["orders"], 12)
}

func (suite *DashboardHTTPTestSuite) TestBarCharts_StoreFailureIsNotCached() {
	// Arrange
	suite.asAdmin()
	suite.products.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, stderrors.New("connection reset"))
	suite.users.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*userdomain.User{}, nil).Maybe()
	suite.orders.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*orderdomain.Order{}, nil).Maybe()

	// Act
	rec, body := suite.get("/api/v1/dashboard/bar?id=admin-1")

	// Assert
	suite.Equal(http.StatusInternalServerError, rec.Code)
	suite.Equal("Internal Server Error", body["message"])
	suite.False(suite.store.Has(context.Background(), cache.KeyAdminBarCharts))
}

func (suite *DashboardHTTPTestSuite) TestStats_ServedFromCache() {
	// Arrange
	suite.asAdmin()
	suite.store.Set(context.Background(), cache.KeyAdminStats, `{}`)

	// Act
	rec, body := suite.get("/api/v1/dashboard/stats?id=admin-1")

	// Assert
	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(body, "stats")
}

func (suite *DashboardHTTPTestSuite) TestRoutesRequireLogin() {
	for _, target := range []string{"/stats", "/pie", "/bar", "/line"} {
		rec, body := suite.get("/api/v1/dashboard" + target)

		suite.Equal(http.StatusUnauthorized, rec.Code, target)
		suite.Equal("Must login first.", body["message"], target)
	}
}

func (suite *DashboardHTTPTestSuite) TestRoutesRejectCustomers() {
	// Arrange
	suite.users.On("GetUser", mock.Anything, "u1").Return(testutil.CreateTestUser("u1", "user"), nil)

	// Act
	rec, body := suite.get("/api/v1/dashboard/pie?id=u1")

	// Assert
	suite.Equal(http.StatusForbidden, rec.Code)
	suite.Equal("Admin access prohibited.", body["message"])
}

func TestDashboardHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardHTTPTestSuite))
}
