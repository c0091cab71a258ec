package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
	"github.com/narwhalmedia/storefront/pkg/logger"
)

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to http.HandlerFunc. A returned error is written as
// {"success": false, "message": ...} with the status errors.HTTPStatus picks.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status := errors.HTTPStatus(err)
		log := logger.FromContext(r.Context())
		if status >= http.StatusInternalServerError {
			log.Error("Request failed",
				interfaces.String("path", r.URL.Path),
				interfaces.Int("status", status),
				interfaces.Error(err))
		} else {
			log.Debug("Request rejected",
				interfaces.String("path", r.URL.Path),
				interfaces.Int("status", status),
				interfaces.Error(err))
		}

		Error(w, status, errors.PublicMessage(err))
	}
}

// Payload is a response body. Success is added by JSON.
type Payload map[string]interface{}

// JSON writes payload with "success": true.
func JSON(w http.ResponseWriter, status int, payload Payload) error {
	body := make(Payload, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	return write(w, status, body)
}

// Message writes a success response carrying only a message.
func Message(w http.ResponseWriter, status int, message string) error {
	return JSON(w, status, Payload{"message": message})
}

// Error writes a failure response.
func Error(w http.ResponseWriter, status int, message string) {
	_ = write(w, status, Payload{"success": false, "message": message})
}

func write(w http.ResponseWriter, status int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// Decode reads a JSON request body into v.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrorTypeBadRequest, "Invalid request body", err)
	}
	return nil
}
