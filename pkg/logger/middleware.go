package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// HTTPMiddleware logs every request once it completes and stores a request
// scoped logger in the request context.
func HTTPMiddleware(logger interfaces.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.WithContext(r.Context())

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(WithContext(r.Context(), reqLogger)))

			fields := []interfaces.Field{
				interfaces.String("method", r.Method),
				interfaces.String("path", r.URL.Path),
				interfaces.Int("status", ww.Status()),
				interfaces.Int("bytes", ww.BytesWritten()),
				interfaces.Duration("duration", time.Since(start)),
				interfaces.String("remote_addr", r.RemoteAddr),
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.Error("HTTP request failed", fields...)
			case ww.Status() >= http.StatusBadRequest:
				reqLogger.Warn("HTTP request rejected", fields...)
			default:
				reqLogger.Info("HTTP request completed", fields...)
			}
		})
	}
}
