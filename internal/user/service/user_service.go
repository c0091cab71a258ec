package service

import (
	"context"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/internal/user/repository"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/interfaces"
)

// UserService handles user management operations.
type UserService struct {
	repo        repository.Repository
	invalidator *cache.Invalidator
	publisher   interfaces.EventPublisher
	logger      interfaces.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	repo repository.Repository,
	invalidator *cache.Invalidator,
	publisher interfaces.EventPublisher,
	logger interfaces.Logger,
) *UserService {
	return &UserService{
		repo:        repo,
		invalidator: invalidator,
		publisher:   publisher,
		logger:      logger,
	}
}

// NewUser registers a user. When a user with the same id already exists it
// is returned unchanged and created is false.
func (s *UserService) NewUser(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	existing, err := s.repo.GetUser(ctx, user.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.IsNotFound(err) {
		return nil, false, err
	}

	user.Role = domain.RoleUser
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, false, err
	}

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{Admin: true})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.UserCreated, user.ID, map[string]interface{}{
		"email":  user.Email,
		"gender": user.Gender,
	}))

	s.logger.Info("User created",
		interfaces.String("user_id", user.ID),
		interfaces.String("email", user.Email))

	return user, true, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Invalid Id")
		}
		return nil, err
	}
	return user, nil
}

// ListUsers lists every user, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return errors.BadRequest("Invalid Id")
		}
		return err
	}

	s.invalidator.Invalidate(ctx, cache.InvalidationRequest{Admin: true})

	events.PublishOrLog(ctx, s.publisher, s.logger, events.NewAggregateEvent(events.UserDeleted, id, nil))

	s.logger.Info("User deleted", interfaces.String("user_id", id))
	return nil
}
