package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

// APIPrefix is where every module is mounted
const APIPrefix = "/api/v1"

// Module registers one bounded context's routes.
type Module interface {
	// Prefix is the path under APIPrefix, e.g. "/product"
	Prefix() string
	// Register adds the routes. admin guards admin-only routes.
	Register(r chi.Router, admin func(http.Handler) http.Handler)
}

// ReadinessCheck reports whether a dependency can serve traffic
type ReadinessCheck func(ctx context.Context) error

// Options configures the router
type Options struct {
	Logger         interfaces.Logger
	AllowedOrigins []string
	Users          UserLookup
	Ready          ReadinessCheck

	// MetricsPath serves Prometheus metrics from Gatherer when set
	MetricsPath string
	Gatherer    prometheus.Gatherer
	Metrics     *RequestMetrics

	// UploadsDir is served under /uploads when set
	UploadsDir string
}

// NewRouter creates the HTTP router with every module mounted
func NewRouter(opts Options, modules ...Module) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(logger.HTTPMiddleware(opts.Logger))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = JSON(w, http.StatusOK, Payload{"status": "healthy"})
	})
	router.Get("/ready", Handle(func(w http.ResponseWriter, r *http.Request) error {
		if opts.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.Ready(ctx); err != nil {
				opts.Logger.Warn("Readiness check failed", interfaces.Error(err))
				Error(w, http.StatusServiceUnavailable, "not ready")
				return nil
			}
		}
		return JSON(w, http.StatusOK, Payload{"status": "ready"})
	}))

	if opts.MetricsPath != "" && opts.Gatherer != nil {
		router.Handle(opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	if opts.UploadsDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	admin := AdminOnly(opts.Users)
	router.Route(APIPrefix, func(r chi.Router) {
		for _, m := range modules {
			m := m
			r.Route(m.Prefix(), func(r chi.Router) {
				m.Register(r, admin)
			})
		}
	})

	return router
}
