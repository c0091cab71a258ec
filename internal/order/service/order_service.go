package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/order/domain"
	"github.com/narwhalmedia/storefront/internal/order/repository"
	productdomain "github.com/narwhalmedia/storefront/internal/product/domain"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/validation"
)

// StockReducer takes ordered quantities out of product stock.
type StockReducer interface {
	ReduceStock(ctx context.Context, changes []productdomain.StockChange) error
}

// PlaceInput is a new order as submitted at checkout.
type PlaceInput struct {
	ShippingInfo    domain.ShippingInfo `json:"shippingInfo" validate:"required"`
	Items           []domain.Item       `json:"orderItems" validate:"required,min=1,dive"`
	UserID          string              `json:"user" validate:"required"`
	Subtotal        float64             `json:"subtotal" validate:"gt=0"`
	Tax             float64             `json:"tax" validate:"gte=0"`
	ShippingCharges float64             `json:"shippingCharges" validate:"gte=0"`
	Discount        float64             `json:"discount" validate:"gte=0"`
	Total           float64             `json:"total" validate:"gt=0"`
}

// OrderService handles checkout and fulfillment.
type OrderService struct {
	repo        repository.Repository
	stock       StockReducer
	cache       interfaces.Cache
	invalidator *cache.Invalidator
	publisher   interfaces.EventPublisher
	logger      interfaces.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	repo repository.Repository,
	stock StockReducer,
	store interfaces.Cache,
	invalidator *cache.Invalidator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
) *OrderService {
	return &OrderService{
		repo:        repo,
		stock:       stock,
		cache:       store,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// PlaceOrder records the order and reduces stock for every line. When the
// stock update fails the order is removed again.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceInput) (*domain.Order, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		ShippingInfo:    input.ShippingInfo,
		UserID:          input.UserID,
		Subtotal:        input.Subtotal,
		Tax:             input.Tax,
		ShippingCharges: input.ShippingCharges,
		Discount:        input.Discount,
		Total:           input.Total,
		Status:          domain.StatusProcessing,
		Items:           make([]domain.Item, len(input.Items)),
	}
	copy(order.Items, input.Items)
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = order.ID
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	changes := make([]productdomain.StockChange, 0, len(order.Items))
	for _, item := range order.Items {
		changes = append(changes, productdomain.StockChange{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := s.stock.ReduceStock(ctx, changes); err != nil {
		if delErr := s.repo.DeleteOrder(ctx, order.ID); delErr != nil {
			s.logger.Error("Failed to remove order after stock update failed",
				interfaces.String("order_id", order.ID),
				interfaces.Error(delErr))
		}
		return nil, err
	}

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		ProductIDs: order.ProductIDs(),
	})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.OrderPlaced, order.ID, map[string]interface{}{
		"user_id":  order.UserID,
		"total":    order.Total,
		"quantity": order.Quantity(),
	}))

	s.logger.Info("Order placed",
		interfaces.String("order_id", order.ID),
		interfaces.String("user_id", order.UserID),
		interfaces.Float64("total", order.Total))

	return order, nil
}

// MyOrders returns a user's order history.
func (s *OrderService) MyOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return cache.ReadThrough(ctx, s.cache, cache.MyOrdersKey(userID), func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.ListByUser(ctx, userID)
	})
}

// AllOrders returns every order with its customer.
func (s *OrderService) AllOrders(ctx context.Context) ([]*domain.Order, error) {
	return cache.ReadThrough(ctx, s.cache, cache.KeyAllOrders, func(ctx context.Context) ([]*domain.Order, error) {
		return s.repo.ListOrders(ctx)
	})
}

// GetOrder returns a single order with its customer.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return cache.ReadThrough(ctx, s.cache, cache.OrderKey(id), func(ctx context.Context) (*domain.Order, error) {
		return s.repo.GetOrder(ctx, id)
	})
}

// ProcessOrder advances the order to its next status.
func (s *OrderService) ProcessOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	next := order.Status.Next()
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	order.Status = next

	s.invalidateOrder(ctx, order)

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.OrderProcessed, order.ID, map[string]interface{}{
		"status": string(next),
	}))

	return order, nil
}

// DeleteOrder removes an order.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}

	s.invalidateOrder(ctx, order)

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.OrderDeleted, order.ID, nil))

	s.logger.Info("Order deleted", interfaces.String("order_id", id))
	return nil
}

func (s *OrderService) invalidateOrder(ctx context.Context, order *domain.Order) {
	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})
}
