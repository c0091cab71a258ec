package repository

import (
	"context"
	"time"

	"github.com/narwhalmedia/storefront/internal/user/domain"
)

// Repository defines persistence operations for users.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// Dashboard queries
	CountUsers(ctx context.Context) (int64, error)
	CountByGender(ctx context.Context, gender string) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*domain.User, error)
	ListBirthDates(ctx context.Context) ([]time.Time, error)
}
