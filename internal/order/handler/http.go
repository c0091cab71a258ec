package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narwhalmedia/storefront/internal/httpapi"
	"github.com/narwhalmedia/storefront/internal/order/service"
)

// HTTPHandler serves the order routes
type HTTPHandler struct {
	service *service.OrderService
}

// NewHTTPHandler creates a new order HTTP handler
func NewHTTPHandler(service *service.OrderService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Prefix implements httpapi.Module
func (h *HTTPHandler) Prefix() string { return "/order" }

// Register implements httpapi.Module
func (h *HTTPHandler) Register(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Post("/new", httpapi.Handle(h.placeOrder))
	r.Get("/my", httpapi.Handle(h.myOrders))
	r.With(admin).Get("/all", httpapi.Handle(h.allOrders))
	r.Get("/{id}", httpapi.Handle(h.getOrder))
	r.With(admin).Put("/{id}", httpapi.Handle(h.processOrder))
	r.With(admin).Delete("/{id}", httpapi.Handle(h.deleteOrder))
}

func (h *HTTPHandler) placeOrder(w http.ResponseWriter, r *http.Request) error {
	var input service.PlaceInput
	if err := httpapi.Decode(r, &input); err != nil {
		return err
	}
	if _, err := h.service.PlaceOrder(r.Context(), input); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusCreated, "Order Placed Successfully")
}

func (h *HTTPHandler) myOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.MyOrders(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"orders": orders})
}

func (h *HTTPHandler) allOrders(w http.ResponseWriter, r *http.Request) error {
	orders, err := h.service.AllOrders(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"orders": orders})
}

func (h *HTTPHandler) getOrder(w http.ResponseWriter, r *http.Request) error {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"order": order})
}

func (h *HTTPHandler) processOrder(w http.ResponseWriter, r *http.Request) error {
	if _, err := h.service.ProcessOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, "Order Processed Successfully")
}

func (h *HTTPHandler) deleteOrder(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	return httpapi.Message(w, http.StatusOK, "Order Deleted Successfully")
}
