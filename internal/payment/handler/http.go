package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/payment/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
)

// HTTPHandler serves the payment and coupon routes
type HTTPHandler struct {
	service *service.PaymentService
}

// NewHTTPHandler creates a new payment HTTP handler
func NewHTTPHandler(service *service.PaymentService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Prefix implements httpapi.Module
func (h *HTTPHandler) Prefix() string { return "/payment" }

// Register implements httpapi.Module
func (h *HTTPHandler) Register(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Post("/create", httpapi.Handle(h.createIntent))
	r.Get("/discount", httpapi.Handle(h.applyDiscount))

	r.Route("/coupon", func(r chi.Router) {
		r.Use(admin)
		r.Post("/new", httpapi.Handle(h.newCoupon))
		r.Get("/all", httpapi.Handle(h.listCoupons))
		r.Delete("/{id}", httpapi.Handle(h.deleteCoupon))
	})
}

func (h *HTTPHandler) createIntent(w http.ResponseWriter, r *http.Request) error {
	var input service.IntentInput
	if err := httpapi.Decode(r, &input); err != nil {
		return err
	}

	intent, err := h.service.CreateIntent(r.Context(), input)
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusCreated, httpapi.Payload{"clientSecret": intent.ClientSecret})
}

func (h *HTTPHandler) applyDiscount(w http.ResponseWriter, r *http.Request) error {
	code := r.URL.Query().Get("couponCode")
	if code == "" {
		return errors.BadRequest("Invalid coupon code")
	}

	discount, err := h.service.ApplyDiscount(r.Context(), code)
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"discount": discount})
}

func (h *HTTPHandler) newCoupon(w http.ResponseWriter, r *http.Request) error {
	var input service.CouponInput
	if err := httpapi.Decode(r, &input); err != nil {
		return err
	}

	coupon, err := h.service.NewCoupon(r.Context(), input)
	if err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusCreated, fmt.Sprintf("Coupon %s Created Successfully", coupon.Code))
}

func (h *HTTPHandler) listCoupons(w http.ResponseWriter, r *http.Request) error {
	coupons, err := h.service.ListCoupons(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"coupons": coupons})
}

func (h *HTTPHandler) deleteCoupon(w http.ResponseWriter, r *http.Request) error {
	coupon, err := h.service.DeleteCoupon(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, fmt.Sprintf("Coupon %s Deleted Successfully", coupon.Code))
}
