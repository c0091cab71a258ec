package httpapi

import (
	"context"
	"net/http"

	userdomain "github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/pkg/errors"
)

// UserLookup finds the caller named by the id query parameter.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*userdomain.User, error)
}

type adminKey struct{}

// AdminOnly rejects requests whose ?id= does not name an admin user.
func AdminOnly(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Handle(func(w http.ResponseWriter, r *http.Request) error {
			id := r.URL.Query().Get("id")
			if id == "" {
				return errors.Unauthorized("Must login first.")
			}

			user, err := users.GetUser(r.Context(), id)
			if err != nil {
				if errors.IsNotFound(err) || errors.IsBadRequest(err) {
					return errors.Unauthorized("Invalid Id.")
				}
				return err
			}
			if !user.IsAdmin() {
				return errors.Forbidden("Admin access prohibited.")
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, user)))
			return nil
		})
	}
}

// AdminFromContext returns the admin AdminOnly admitted.
func AdminFromContext(ctx context.Context) (*userdomain.User, bool) {
	user, ok := ctx.Value(adminKey{}).(*userdomain.User)
	return user, ok
}
