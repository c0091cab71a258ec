package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narwhalmedia/storefront/internal/dashboard/service"
	"github.com/narwhalmedia/storefront/internal/httpapi"
)

// HTTPHandler serves the admin dashboard routes
type HTTPHandler struct {
	service *service.DashboardService
}

// NewHTTPHandler creates a new dashboard HTTP handler
func NewHTTPHandler(service *service.DashboardService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Prefix implements httpapi.Module
func (h *HTTPHandler) Prefix() string { return "/dashboard" }

// Register implements httpapi.Module. Every route is admin only.
func (h *HTTPHandler) Register(r chi.Router, admin func(http.Handler) http.Handler) {
	r.Use(admin)
	r.Get("/stats", httpapi.Handle(h.stats))
	r.Get("/pie", httpapi.Handle(h.pieCharts))
	r.Get("/bar", httpapi.Handle(h.barCharts))
	r.Get("/line", httpapi.Handle(h.lineCharts))
}

func (h *HTTPHandler) stats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"stats": stats})
}

func (h *HTTPHandler) pieCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.service.PieCharts(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"charts": charts})
}

func (h *HTTPHandler) barCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.service.BarCharts(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"charts": charts})
}

func (h *HTTPHandler) lineCharts(w http.ResponseWriter, r *http.Request) error {
	charts, err := h.service.LineCharts(r.Context())
	if err != nil {
		return err
	}
	return httpapi.JSON(w, http.StatusOK, httpapi.Payload{"charts": charts})
}
