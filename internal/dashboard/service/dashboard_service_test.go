package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/internal/analytics"
	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/dashboard/service"
	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	orderrepo "github.com/narwhalmedia/storefront/internal/order/repository"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/logger"
	"github.com/narwhalmedia/storefront/test/mocks"
)

type DashboardServiceTestSuite struct {
	suite.Suite

	ctx      context.Context
	now      time.Time
	products *mocks.ProductRepository
	users    *mocks.UserRepository
	orders   *mocks.OrderRepository
	store    *cache.MemoryStore
	service  *service.DashboardService
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	suite.products = new(mocks.ProductRepository)
	suite.users = new(mocks.UserRepository)
	suite.orders = new(mocks.OrderRepository)
	suite.store = cache.NewMemoryStore()

	suite.service = service.NewDashboardService(
		suite.products,
		suite.users,
		suite.orders,
		suite.store,
		logger.NewNoop(),
	).WithClock(func() time.Time { return suite.now })
}

func (suite *DashboardServiceTestSuite) TearDownTest() {
	suite.products.AssertExpectations(suite.T())
	suite.users.AssertExpectations(suite.T())
	suite.orders.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) day(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 10, 0, 0, 0, time.UTC)
}

func (suite *DashboardServiceTestSuite) expectCategories() {
	suite.products.On("ListCategories", mock.Anything).Return([]string{"electronics", "games"}, nil).Once()
	suite.products.On("CountProducts", mock.Anything).Return(int64(4), nil).Once()
	suite.products.On("CountByCategory", mock.Anything, "electronics").Return(int64(3), nil).Once()
	suite.products.On("CountByCategory", mock.Anything, "games").Return(int64(1), nil).Once()
}

func (suite *DashboardServiceTestSuite) TestStats() {
	// Arrange
	thisMonthStart := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	lastMonthEnd := thisMonthStart.Add(-time.Nanosecond)
	sixMonthsAgo := suite.now.AddDate(0, -6, 0)

	june1 := &orderdomain.Order{
		ID:        "o1",
		Total:     100,
		Discount:  10,
		Status:    orderdomain.StatusProcessing,
		CreatedAt: suite.day(time.June, 10),
		Items:     []orderdomain.Item{{ProductID: "p1", Quantity: 1}, {ProductID: "p2", Quantity: 3}},
	}
	june2 := &orderdomain.Order{ID: "o2", Total: 50, CreatedAt: suite.day(time.June, 12)}
	may := &orderdomain.Order{ID: "o3", Total: 100, CreatedAt: suite.day(time.May, 5)}

	suite.products.On("ListCreatedBetween", mock.Anything, thisMonthStart, suite.now).
		Return([]*productdomain.Product{{ID: "p1"}, {ID: "p2"}}, nil).Once()
	suite.products.On("ListCreatedBetween", mock.Anything, lastMonthStart, lastMonthEnd).
		Return([]*productdomain.Product{{ID: "p0"}}, nil).Once()
	suite.users.On("ListCreatedBetween", mock.Anything, thisMonthStart, suite.now).
		Return([]*userdomain.User{{ID: "u1"}}, nil).Once()
	suite.users.On("ListCreatedBetween", mock.Anything, lastMonthStart, lastMonthEnd).
		Return([]*userdomain.User{}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, thisMonthStart, suite.now).
		Return([]*orderdomain.Order{june1, june2}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, lastMonthStart, lastMonthEnd).
		Return([]*orderdomain.Order{may}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, sixMonthsAgo, suite.now).
		Return([]*orderdomain.Order{june1, june2, may}, nil).Once()
	suite.orders.On("ListLatest", mock.Anything, 4).Return([]*orderdomain.Order{june1}, nil).Once()
	suite.users.On("CountUsers", mock.Anything).Return(int64(10), nil).Once()
	suite.users.On("CountByGender", mock.Anything, userdomain.GenderMale).Return(int64(4), nil).Once()
	suite.orders.On("CountOrders", mock.Anything).Return(int64(3), nil).Once()
	suite.orders.On("SumTotals", mock.Anything).Return(orderrepo.Totals{Total: 250}, nil).Once()
	suite.expectCategories()

	// Act
	stats, err := suite.service.Stats(suite.ctx)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]map[string]int64{{"electronics": 100}, {"games": 0}}, stats.CategoryCount)
	suite.Equal(50.0, stats.ChangePercent.Revenue)
	suite.Equal(100.0, stats.ChangePercent.Product)
	suite.Equal(100.0, stats.ChangePercent.User)
	suite.Equal(100.0, stats.ChangePercent.Order)
	suite.Equal(250.0, stats.Count.Revenue)
	suite.Equal(int64(4), stats.Count.Product)
	suite.Equal(int64(10), stats.Count.User)
	suite.Equal(int64(3), stats.Count.Order)
	suite.Equal([]float64{0, 0, 0, 0, 1, 2}, stats.Chart.Order)
	suite.Equal([]float64{0, 0, 0, 0, 100, 150}, stats.Chart.Revenue)
	suite.Equal(int64(4), stats.UserGenderRatio.Male)
	suite.Equal(int64(6), stats.UserGenderRatio.Female)
	suite.Require().Len(stats.LatestTransaction, 1)
	suite.Equal("o1", stats.LatestTransaction[0].ID)
	suite.Equal(2, stats.LatestTransaction[0].Quantity)
	suite.Equal(10.0, stats.LatestTransaction[0].Discount)
	suite.Equal("Processing", stats.LatestTransaction[0].Status)
}

func (suite *DashboardServiceTestSuite) TestPieCharts_CachedUntilInvalidated() {
	// Arrange
	suite.orders.On("CountByStatus", mock.Anything, orderdomain.StatusProcessing).Return(int64(2), nil).Once()
	suite.orders.On("CountByStatus", mock.Anything, orderdomain.StatusShipped).Return(int64(1), nil).Once()
	suite.orders.On("CountByStatus", mock.Anything, orderdomain.StatusDelivered).Return(int64(3), nil).Once()
	suite.products.On("CountOutOfStock", mock.Anything).Return(int64(1), nil).Once()
	suite.orders.On("SumTotals", mock.Anything).
		Return(orderrepo.Totals{Total: 1000, Discount: 50, ShippingCharges: 100, Tax: 20}, nil).Once()
	suite.users.On("ListBirthDates", mock.Anything).Return([]time.Time{
		time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1990, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1984, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	suite.users.On("CountUsers", mock.Anything).Return(int64(10), nil).Once()
	suite.users.On("CountByRole", mock.Anything, userdomain.RoleAdmin).Return(int64(1), nil).Once()
	suite.expectCategories()

	// Act
	charts, err := suite.service.PieCharts(suite.ctx)
	cached, cachedErr := suite.service.PieCharts(suite.ctx)

	// Assert
	suite.Require().NoError(err)
	suite.Require().NoError(cachedErr)
	suite.Equal(charts, cached)
	suite.True(suite.store.Has(suite.ctx, cache.KeyAdminPieCharts))

	suite.Equal(int64(2), charts.OrderFulfillment.Processing)
	suite.Equal(int64(1), charts.OrderFulfillment.Shipped)
	suite.Equal(int64(3), charts.OrderFulfillment.Delivered)
	suite.Equal(int64(3), charts.StockAvailability.InStock)
	suite.Equal(int64(1), charts.StockAvailability.OutOfStock)
	suite.Equal(analytics.RevenueDistribution{
		NetMargin:      530,
		Discount:       50,
		ProductionCost: 100,
		Burnt:          20,
		MarketingCost:  300,
	}, charts.RevenueDistribution)
	suite.Equal(int64(1), charts.AdminCustomer.Admin)
	suite.Equal(int64(9), charts.AdminCustomer.Customer)
	suite.Equal(analytics.AgeGroups{Teen: 1, Adult: 1, Old: 1}, charts.UserAgeGroup)
}

func (suite *DashboardServiceTestSuite) TestBarCharts() {
	// Arrange
	sixMonthsAgo := suite.now.AddDate(0, -6, 0)
	twelveMonthsAgo := suite.now.AddDate(0, -12, 0)

	suite.products.On("ListCreatedBetween", mock.Anything, sixMonthsAgo, suite.now).Return([]*productdomain.Product{
		{ID: "p1", CreatedAt: suite.day(time.June, 1)},
		{ID: "p2", CreatedAt: suite.day(time.January, 20)},
	}, nil).Once()
	suite.users.On("ListCreatedBetween", mock.Anything, sixMonthsAgo, suite.now).Return([]*userdomain.User{
		{ID: "u1", CreatedAt: suite.day(time.April, 3)},
	}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, twelveMonthsAgo, suite.now).Return([]*orderdomain.Order{
		{ID: "o1", CreatedAt: suite.day(time.June, 2)},
		{ID: "o2", CreatedAt: time.Date(2023, time.July, 9, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()

	// Act
	charts, err := suite.service.BarCharts(suite.ctx)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]float64{1, 0, 0, 0, 0, 1}, charts.Products)
	suite.Equal([]float64{0, 0, 0, 1, 0, 0}, charts.Users)
	suite.Equal([]float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1}, charts.Orders)
}

func (suite *DashboardServiceTestSuite) TestBarCharts_ErrorIsNotCached() {
	// Arrange
	suite.products.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*productdomain.Product{}, nil).Maybe()
	suite.users.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]*userdomain.User{}, nil).Maybe()
	suite.orders.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.Internal("database unavailable")).Once()

	// Act
	charts, err := suite.service.BarCharts(suite.ctx)

	// Assert
	suite.Error(err)
	suite.Nil(charts)
	suite.False(suite.store.Has(suite.ctx, cache.KeyAdminBarCharts))
}

func (suite *DashboardServiceTestSuite) TestLineCharts() {
	// Arrange
	twelveMonthsAgo := suite.now.AddDate(0, -12, 0)

	suite.products.On("ListCreatedBetween", mock.Anything, twelveMonthsAgo, suite.now).
		Return([]*productdomain.Product{}, nil).Once()
	suite.users.On("ListCreatedBetween", mock.Anything, twelveMonthsAgo, suite.now).
		Return([]*userdomain.User{{ID: "u1", CreatedAt: suite.day(time.May, 1)}}, nil).Once()
	suite.orders.On("ListCreatedBetween", mock.Anything, twelveMonthsAgo, suite.now).Return([]*orderdomain.Order{
		{ID: "o1", Total: 200, Discount: 20, CreatedAt: suite.day(time.June, 2)},
		{ID: "o2", Total: 80, Discount: 5, CreatedAt: suite.day(time.June, 9)},
	}, nil).Once()

	// Act
	charts, err := suite.service.LineCharts(suite.ctx)

	// Assert
	suite.Require().NoError(err)
	suite.Equal(make([]float64, 12), charts.Products)
	suite.Equal(1.0, charts.Users[10])
	suite.Equal(25.0, charts.Discount[11])
	suite.Equal(280.0, charts.Revenue[11])
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
