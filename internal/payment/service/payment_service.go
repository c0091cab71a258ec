package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/narwhalmedia/storefront/internal/payment/domain"
	"github.com/narwhalmedia/storefront/internal/payment/gateway"
	"github.com/narwhalmedia/storefront/internal/payment/repository"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/validation"
)

// IntentInput requests a payment for amount in major currency units.
type IntentInput struct {
	Amount float64      `json:"amount" validate:"gt=0"`
	Party  domain.Party `json:"paymentParty" validate:"required"`
}

// CouponInput creates a coupon.
type CouponInput struct {
	Code   string  `json:"couponCode" validate:"required"`
	Amount float64 `json:"discountAmount" validate:"gt=0"`
}

// PaymentService handles payment intents and coupons.
type PaymentService struct {
	repo      repository.Repository
	gateways  map[domain.Party]gateway.Gateway
	currency  string
	publisher interfaces.EventPublisher
	logger    interfaces.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	repo repository.Repository,
	gateways map[domain.Party]gateway.Gateway,
	currency string,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
) *PaymentService {
	return &PaymentService{
		repo:      repo,
		gateways:  gateways,
		currency:  currency,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateIntent starts a payment with the requested gateway.
func (s *PaymentService) CreateIntent(ctx context.Context, input IntentInput) (*domain.Intent, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	gw, ok := s.gateways[input.Party]
	if !ok {
		return nil, errors.BadRequest(fmt.Sprintf("Unsupported payment party %q", input.Party))
	}

	secret, err := gw.CreateIntent(ctx, int64(math.Round(input.Amount*100)), s.currency)
	if err != nil {
		return nil, err
	}

	return &domain.Intent{Party: input.Party, ClientSecret: secret}, nil
}

// NewCoupon creates a coupon.
func (s *PaymentService) NewCoupon(ctx context.Context, input CouponInput) (*domain.Coupon, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	coupon := &domain.Coupon{
		ID:     uuid.NewString(),
		Code:   strings.TrimSpace(input.Code),
		Amount: input.Amount,
	}
	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, err
	}

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.CouponCreated, coupon.ID, map[string]interface{}{
		"code": coupon.Code,
	}))

	return coupon, nil
}

// ApplyDiscount returns the discount granted by code.
func (s *PaymentService) ApplyDiscount(ctx context.Context, code string) (float64, error) {
	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.IsNotFound(err) {
			return 0, errors.BadRequest("Invalid coupon code")
		}
		return 0, err
	}
	return coupon.Amount, nil
}

// ListCoupons lists every coupon.
func (s *PaymentService) ListCoupons(ctx context.Context) ([]*domain.Coupon, error) {
	return s.repo.ListCoupons(ctx)
}

// DeleteCoupon removes a coupon.
func (s *PaymentService) DeleteCoupon(ctx context.Context, id string) (*domain.Coupon, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.BadRequest("Invalid Coupon Id")
	}

	coupon, err := s.repo.DeleteCoupon(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Invalid Coupon Id")
		}
		return nil, err
	}

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.CouponDeleted, coupon.ID, map[string]interface{}{
		"code": coupon.Code,
	}))

	return coupon, nil
}
