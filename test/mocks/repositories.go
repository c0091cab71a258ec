package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	orderdomain "github.com/narwhalmedia/storefront/internal/order/domain"
	orderrepo "github.com/narwhalmedia/storefront/internal/order/repository"
	paymentdomain "github.com/narwhalmedia/storefront/internal/payment/domain"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
)

// UserRepository is a mock user repository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *userdomain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*userdomain.User)
	return user, args.Error(1)
}

func (m *UserRepository) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) ListUsers(ctx context.Context) ([]*userdomain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*userdomain.User)
	return users, args.Error(1)
}

func (m *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) CountByGender(ctx context.Context, gender string) (int64, error) {
	args := m.Called(ctx, gender)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*userdomain.User, error) {
	args := m.Called(ctx, from, to)
	users, _ := args.Get(0).([]*userdomain.User)
	return users, args.Error(1)
}

func (m *UserRepository) ListBirthDates(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	dobs, _ := args.Get(0).([]time.Time)
	return dobs, args.Error(1)
}

// ProductRepository is a mock product repository
type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *productdomain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProduct(ctx context.Context, id string) (*productdomain.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*productdomain.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *productdomain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) ListLatest(ctx context.Context, limit int) ([]*productdomain.Product, error) {
	args := m.Called(ctx, limit)
	products, _ := args.Get(0).([]*productdomain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]string)
	return categories, args.Error(1)
}

func (m *ProductRepository) ListProducts(ctx context.Context) ([]*productdomain.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]*productdomain.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) Search(ctx context.Context, filter productdomain.SearchFilter) ([]*productdomain.Product, int64, error) {
	args := m.Called(ctx, filter)
	products, _ := args.Get(0).([]*productdomain.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) ReduceStock(ctx context.Context, changes []productdomain.StockChange) error {
	return m.Called(ctx, changes).Error(0)
}

func (m *ProductRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*productdomain.Product, error) {
	args := m.Called(ctx, from, to)
	products, _ := args.Get(0).([]*productdomain.Product)
	return products, args.Error(1)
}

// OrderRepository is a mock order repository
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *orderdomain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrder(ctx context.Context, id string) (*orderdomain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*orderdomain.Order)
	return order, args.Error(1)
}

func (m *OrderRepository) UpdateStatus(ctx context.Context, id string, status orderdomain.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*orderdomain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]*orderdomain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context) ([]*orderdomain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*orderdomain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) CountByStatus(ctx context.Context, status orderdomain.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) ListLatest(ctx context.Context, limit int) ([]*orderdomain.Order, error) {
	args := m.Called(ctx, limit)
	orders, _ := args.Get(0).([]*orderdomain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*orderdomain.Order, error) {
	args := m.Called(ctx, from, to)
	orders, _ := args.Get(0).([]*orderdomain.Order)
	return orders, args.Error(1)
}

func (m *OrderRepository) SumTotals(ctx context.Context) (orderrepo.Totals, error) {
	args := m.Called(ctx)
	return args.Get(0).(orderrepo.Totals), args.Error(1)
}

// CouponRepository is a mock coupon repository
type CouponRepository struct {
	mock.Mock
}

func (m *CouponRepository) CreateCoupon(ctx context.Context, coupon *paymentdomain.Coupon) error {
	return m.Called(ctx, coupon).Error(0)
}

func (m *CouponRepository) GetCouponByCode(ctx context.Context, code string) (*paymentdomain.Coupon, error) {
	args := m.Called(ctx, code)
	coupon, _ := args.Get(0).(*paymentdomain.Coupon)
	return coupon, args.Error(1)
}

func (m *CouponRepository) ListCoupons(ctx context.Context) ([]*paymentdomain.Coupon, error) {
	args := m.Called(ctx)
	coupons, _ := args.Get(0).([]*paymentdomain.Coupon)
	return coupons, args.Error(1)
}

func (m *CouponRepository) DeleteCoupon(ctx context.Context, id string) (*paymentdomain.Coupon, error) {
	args := m.Called(ctx, id)
	coupon, _ := args.Get(0).(*paymentdomain.Coupon)
	return coupon, args.Error(1)
}
