package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/pkg/logger"
)

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, req InvalidationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

var everyKey = []string{
	KeyLatestProducts, KeyCategories, KeyAllProducts, KeyAllOrders,
	KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts,
	ProductKey("a"), ProductKey("b"), ProductKey("c"),
	OrderKey("o1"), OrderKey(""), MyOrdersKey("u1"), MyOrdersKey(""),
}

type InvalidatorTestSuite struct {
	suite.Suite

	ctx         context.Context
	store       *MemoryStore
	invalidator *Invalidator
}

func (suite *InvalidatorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = NewMemoryStore()
	for _, key := range everyKey {
		suite.store.Set(suite.ctx, key, "{}")
	}
	suite.invalidator = NewInvalidator(suite.store, logger.NewNoop())
}

func (suite *InvalidatorTestSuite) remaining() []string {
	var keys []string
	for _, key := range everyKey {
		if suite.store.Has(suite.ctx, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (suite *InvalidatorTestSuite) deleted() []string {
	var keys []string
	for _, key := range everyKey {
		if !suite.store.Has(suite.ctx, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

func (suite *InvalidatorTestSuite) TestProductWithIDs() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{
		Product:    true,
		ProductIDs: []string{"a", "b"},
	})

	suite.ElementsMatch([]string{
		KeyLatestProducts, KeyCategories, KeyAllProducts, ProductKey("a"), ProductKey("b"),
	}, suite.deleted())
}

func (suite *InvalidatorTestSuite) TestAdminOnly() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{Admin: true})

	suite.ElementsMatch([]string{
		KeyAdminStats, KeyAdminPieCharts, KeyAdminBarCharts, KeyAdminLineCharts,
	}, suite.deleted())
}

func (suite *InvalidatorTestSuite) TestOrderWithIDs() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{
		Order:   true,
		UserID:  "u1",
		OrderID: "o1",
	})

	suite.ElementsMatch([]string{KeyAllOrders, MyOrdersKey("u1"), OrderKey("o1")}, suite.deleted())
}

func (suite *InvalidatorTestSuite) TestOrderWithoutIDsDeletesEmptySuffixKeys() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{Order: true})

	suite.ElementsMatch([]string{KeyAllOrders, MyOrdersKey(""), OrderKey("")}, suite.deleted())
}

func (suite *InvalidatorTestSuite) TestNewOrderCombinesAllFlags() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     "u1",
		ProductIDs: []string{"a", "c"},
	})

	suite.ElementsMatch([]string{ProductKey("b"), OrderKey("o1"), MyOrdersKey("")}, suite.remaining())
}

func (suite *InvalidatorTestSuite) TestEmptyRequestDeletesNothing() {
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{UserID: "u1", ProductIDs: []string{"a"}})

	suite.Empty(suite.deleted())
}

func (suite *InvalidatorTestSuite) TestBroadcastAfterLocalDelete() {
	b := new(mockBroadcaster)
	req := InvalidationRequest{Admin: true}
	b.On("Broadcast", suite.ctx, req).Run(func(mock.Arguments) {
		suite.False(suite.store.Has(suite.ctx, KeyAdminStats))
	}).Return(nil).Once()

	suite.invalidator.WithBroadcaster(b).Invalidate(suite.ctx, req)

	b.AssertExpectations(suite.T())
}

func (suite *InvalidatorTestSuite) TestBroadcastFailureIsNotFatal() {
	b := new(mockBroadcaster)
	req := InvalidationRequest{Product: true}
	b.On("Broadcast", suite.ctx, req).Return(errors.New("nats: no servers available")).Once()

	suite.NotPanics(func() {
		suite.invalidator.WithBroadcaster(b).Invalidate(suite.ctx, req)
	})
	suite.False(suite.store.Has(suite.ctx, KeyLatestProducts))
	b.AssertExpectations(suite.T())
}

func (suite *InvalidatorTestSuite) TestApplyDoesNotBroadcast() {
	b := new(mockBroadcaster)

	suite.invalidator.WithBroadcaster(b).Apply(suite.ctx, InvalidationRequest{Admin: true})

	b.AssertNotCalled(suite.T(), "Broadcast", mock.Anything, mock.Anything)
	suite.False(suite.store.Has(suite.ctx, KeyAdminBarCharts))
}

func (suite *InvalidatorTestSuite) TestMetricsCountFlags() {
	metrics := NewMetrics(prometheus.NewRegistry())
	suite.invalidator.WithMetrics(metrics)

	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{Product: true, Admin: true})
	suite.invalidator.Invalidate(suite.ctx, InvalidationRequest{Admin: true})

	suite.Equal(1.0, testutil.ToFloat64(metrics.Invalidations.WithLabelValues("product")))
	suite.Equal(2.0, testutil.ToFloat64(metrics.Invalidations.WithLabelValues("admin")))
	suite.Equal(0.0, testutil.ToFloat64(metrics.Invalidations.WithLabelValues("order")))
}

func TestInvalidatorTestSuite(t *testing.T) {
	suite.Run(t, new(InvalidatorTestSuite))
}

func TestInvalidationRequest_Keys(t *testing.T) {
	keys := InvalidationRequest{Product: true, ProductIDs: []string{"a"}}.Keys()
	assert.Equal(t, []string{KeyLatestProducts, KeyCategories, KeyAllProducts, "product-a"}, keys)

	assert.Empty(t, InvalidationRequest{}.Keys())
	assert.True(t, InvalidationRequest{OrderID: "x"}.IsZero())
}
