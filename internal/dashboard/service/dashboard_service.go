package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/narwhalmedia/storefront/internal/analytics"
	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/dashboard/domain"
	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	orderrepo "github.com/narwhalmedia/storefront/internal/order/repository"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

const latestTransactions = 4

// ProductSource is the product data the dashboard reads.
type ProductSource interface {
	CountProducts(ctx context.Context) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*productdomain.Product, error)
}

// UserSource is the user data the dashboard reads.
type UserSource interface {
	CountUsers(ctx context.Context) (int64, error)
	CountByGender(ctx context.Context, gender string) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*userdomain.User, error)
	ListBirthDates(ctx context.Context) ([]time.Time, error)
}

// OrderSource is the order data the dashboard reads.
type OrderSource interface {
	CountOrders(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status orderdomain.Status) (int64, error)
	ListLatest(ctx context.Context, limit int) ([]*orderdomain.Order, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*orderdomain.Order, error)
	SumTotals(ctx context.Context) (orderrepo.Totals, error)
}

// DashboardService computes the admin analytics. Every result is cached
// until a mutation invalidates the admin keys.
type DashboardService struct {
	products ProductSource
	users    UserSource
	orders   OrderSource
	cache    interfaces.Cache
	logger   interfaces.Logger
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	products ProductSource,
	users UserSource,
	orders OrderSource,
	store interfaces.Cache,
	logger interfaces.Logger,
) *DashboardService {
	return &DashboardService{
		products: products,
		users:    users,
		orders:   orders,
		cache:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to place the time windows.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Stats returns the dashboard overview.
func (s *DashboardService) Stats(ctx context.Context) (*domain.Stats, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAdminStats, s.computeStats)
}

// PieCharts returns the pie chart data.
func (s *DashboardService) PieCharts(ctx context.Context) (*domain.PieCharts, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAdminPieCharts, s.computePieCharts)
}

// BarCharts returns the bar chart data.
func (s *DashboardService) BarCharts(ctx context.Context) (*domain.BarCharts, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAdminBarCharts, s.computeBarCharts)
}

// LineCharts returns the line chart data.
func (s *DashboardService) LineCharts(ctx context.Context) (*domain.LineCharts, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAdminLineCharts, s.computeLineCharts)
}

func (s *DashboardService) computeStats(ctx context.Context) (*domain.Stats, error) {
	today := s.now()
	thisMonthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	lastMonthEnd := thisMonthStart.Add(-time.Nanosecond)
	sixMonthsAgo := today.AddDate(0, -6, 0)

	var (
		thisMonthProducts, lastMonthProducts []*productdomain.Product
		thisMonthUsers, lastMonthUsers       []*userdomain.User
		thisMonthOrders, lastMonthOrders     []*orderdomain.Order
		sixMonthOrders, latest               []*orderdomain.Order
		productCount, userCount, orderCount  int64
		maleCount                            int64
		totals                               orderrepo.Totals
		categoryCount                        []map[string]int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		thisMonthProducts, err = s.products.ListCreatedBetween(ctx, thisMonthStart, today)
		return err
	})
	g.Go(func() (err error) {
		lastMonthProducts, err = s.products.ListCreatedBetween(ctx, lastMonthStart, lastMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		thisMonthUsers, err = s.users.ListCreatedBetween(ctx, thisMonthStart, today)
		return err
	})
	g.Go(func() (err error) {
		lastMonthUsers, err = s.users.ListCreatedBetween(ctx, lastMonthStart, lastMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		thisMonthOrders, err = s.orders.ListCreatedBetween(ctx, thisMonthStart, today)
		return err
	})
	g.Go(func() (err error) {
		lastMonthOrders, err = s.orders.ListCreatedBetween(ctx, lastMonthStart, lastMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		sixMonthOrders, err = s.orders.ListCreatedBetween(ctx, sixMonthsAgo, today)
		return err
	})
	g.Go(func() (err error) {
		latest, err = s.orders.ListLatest(ctx, latestTransactions)
		return err
	})
	g.Go(func() (err error) {
		userCount, err = s.users.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		maleCount, err = s.users.CountByGender(ctx, userdomain.GenderMale)
		return err
	})
	g.Go(func() (err error) {
		orderCount, err = s.orders.CountOrders(ctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.orders.SumTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		categoryCount, productCount, err = s.categoryShares(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	orderRecords := orderRecords(sixMonthOrders)

	stats := &domain.Stats{
		CategoryCount: categoryCount,
		ChangePercent: domain.ChangePercent{
			Revenue: analytics.CalculatePercentage(sumTotal(thisMonthOrders), sumTotal(lastMonthOrders)),
			Product: analytics.CalculatePercentage(float64(len(thisMonthProducts)), float64(len(lastMonthProducts))),
			User:    analytics.CalculatePercentage(float64(len(thisMonthUsers)), float64(len(lastMonthUsers))),
			Order:   analytics.CalculatePercentage(float64(len(thisMonthOrders)), float64(len(lastMonthOrders))),
		},
		Count: domain.Count{
			Revenue: totals.Total,
			Product: productCount,
			User:    userCount,
			Order:   orderCount,
		},
		Chart: domain.MonthlyOrders{
			Order:   analytics.HistoricalData(6, today, orderRecords, analytics.PropertyCount),
			Revenue: analytics.HistoricalData(6, today, orderRecords, analytics.PropertyTotal),
		},
		UserGenderRatio: domain.GenderRatio{
			Male:   maleCount,
			Female: userCount - maleCount,
		},
		LatestTransaction: make([]domain.Transaction, 0, len(latest)),
	}

	for _, order := range latest {
		stats.LatestTransaction = append(stats.LatestTransaction, domain.Transaction{
			ID:       order.ID,
			Discount: order.Discount,
			Amount:   order.Total,
			Quantity: len(order.Items),
			Status:   string(order.Status),
		})
	}

	s.logger.Debug("Computed dashboard stats",
		interfaces.Int64("products", productCount),
		interfaces.Int64("users", userCount),
		interfaces.Int64("orders", orderCount))

	return stats, nil
}

func (s *DashboardService) computePieCharts(ctx context.Context) (*domain.PieCharts, error) {
	today := s.now()

	var (
		processing, shipped, delivered int64
		productCount, outOfStock       int64
		userCount, adminCount          int64
		totals                         orderrepo.Totals
		dobs                           []time.Time
		categoryCount                  []map[string]int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		processing, err = s.orders.CountByStatus(ctx, orderdomain.StatusProcessing)
		return err
	})
	g.Go(func() (err error) {
		shipped, err = s.orders.CountByStatus(ctx, orderdomain.StatusShipped)
		return err
	})
	g.Go(func() (err error) {
		delivered, err = s.orders.CountByStatus(ctx, orderdomain.StatusDelivered)
		return err
	})
	g.Go(func() (err error) {
		categoryCount, productCount, err = s.categoryShares(ctx)
		return err
	})
	g.Go(func() (err error) {
		outOfStock, err = s.products.CountOutOfStock(ctx)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.orders.SumTotals(ctx)
		return err
	})
	g.Go(func() (err error) {
		dobs, err = s.users.ListBirthDates(ctx)
		return err
	})
	g.Go(func() (err error) {
		userCount, err = s.users.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		adminCount, err = s.users.CountByRole(ctx, userdomain.RoleAdmin)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.PieCharts{
		OrderFulfillment: domain.OrderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: categoryCount,
		StockAvailability: domain.StockAvailability{
			InStock:    productCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: analytics.DistributeRevenue(totals.Total, totals.Discount, totals.ShippingCharges, totals.Tax),
		AdminCustomer: domain.AdminCustomer{
			Admin:    adminCount,
			Customer: userCount - adminCount,
		},
		UserAgeGroup: analytics.GroupAges(dobs, today),
	}, nil
}

func (s *DashboardService) computeBarCharts(ctx context.Context) (*domain.BarCharts, error) {
	today := s.now()
	sixMonthsAgo := today.AddDate(0, -6, 0)
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	var (
		products []*productdomain.Product
		users    []*userdomain.User
		orders   []*orderdomain.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ListCreatedBetween(ctx, sixMonthsAgo, today)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.ListCreatedBetween(ctx, sixMonthsAgo, today)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.ListCreatedBetween(ctx, twelveMonthsAgo, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.BarCharts{
		Products: analytics.HistoricalData(6, today, productRecords(products), analytics.PropertyCount),
		Users:    analytics.HistoricalData(6, today, userRecords(users), analytics.PropertyCount),
		Orders:   analytics.HistoricalData(12, today, orderRecords(orders), analytics.PropertyCount),
	}, nil
}

func (s *DashboardService) computeLineCharts(ctx context.Context) (*domain.LineCharts, error) {
	today := s.now()
	twelveMonthsAgo := today.AddDate(0, -12, 0)

	var (
		products []*productdomain.Product
		users    []*userdomain.User
		orders   []*orderdomain.Order
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ListCreatedBetween(ctx, twelveMonthsAgo, today)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.ListCreatedBetween(ctx, twelveMonthsAgo, today)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.ListCreatedBetween(ctx, twelveMonthsAgo, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := orderRecords(orders)
	return &domain.LineCharts{
		Products: analytics.HistoricalData(12, today, productRecords(products), analytics.PropertyCount),
		Users:    analytics.HistoricalData(12, today, userRecords(users), analytics.PropertyCount),
		Discount: analytics.HistoricalData(12, today, records, analytics.PropertyDiscount),
		Revenue:  analytics.HistoricalData(12, today, records, analytics.PropertyTotal),
	}, nil
}

// categoryShares returns the per category distribution and the product
// count it was computed against
func (s *DashboardService) categoryShares(ctx context.Context) ([]map[string]int64, int64, error) {
	categories, err := s.products.ListCategories(ctx)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.CountProducts(ctx)
	if err != nil {
		return nil, 0, err
	}

	counts := make([]int64, len(categories))
	for i, category := range categories {
		counts[i], err = s.products.CountByCategory(ctx, category)
		if err != nil {
			return nil, 0, err
		}
	}

	return analytics.CategoryDistribution(categories, counts, total), total, nil
}

func sumTotal(orders []*orderdomain.Order) float64 {
	var sum float64
	for _, o := range orders {
		sum += o.Total
	}
	return sum
}

func orderRecords(orders []*orderdomain.Order) []analytics.Record {
	records := make([]analytics.Record, 0, len(orders))
	for _, o := range orders {
		records = append(records, analytics.Record{CreatedAt: o.CreatedAt, Discount: o.Discount, Total: o.Total})
	}
	return records
}

func productRecords(products []*productdomain.Product) []analytics.Record {
	records := make([]analytics.Record, 0, len(products))
	for _, p := range products {
		records = append(records, analytics.Record{CreatedAt: p.CreatedAt})
	}
	return records
}

func userRecords(users []*userdomain.User) []analytics.Record {
	records := make([]analytics.Record, 0, len(users))
	for _, u := range users {
		records = append(records, analytics.Record{CreatedAt: u.CreatedAt})
	}
	return records
}
