package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/storefront/internal/cache"
	"github.com/narwhalmedia/storefront/internal/user/domain"
	"github.com/narwhalmedia/storefront/internal/user/service"
	"github.com/narwhalmedia/storefront/pkg/errors"
	"github.com/narwhalmedia/storefront/pkg/events"
	"github.com/narwhalmedia/storefront/pkg/logger"
	"github.com/narwhalmedia/storefront/test/mocks"
	"github.com/narwhalmedia/storefront/test/testutil"
)

type UserServiceTestSuite struct {
	suite.Suite

	ctx         context.Context
	mockRepo    *mocks.UserRepository
	store       *cache.MemoryStore
	events      *testutil.EventRecorder
	userService *service.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(mocks.UserRepository)
	suite.store = cache.NewMemoryStore()
	suite.events = testutil.NewEventRecorder()

	suite.userService = service.NewUserService(
		suite.mockRepo,
		cache.NewInvalidator(suite.store, logger.NewNoop()),
		suite.events,
		logger.NewNoop(),
	)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestNewUser_Creates() {
	// Arrange
	user := testutil.CreateTestUser("uid-1", domain.RoleAdmin)
	suite.store.Set(suite.ctx, cache.KeyAdminStats, "{}")
	suite.mockRepo.On("GetUser", suite.ctx, "uid-1").Return(nil, errors.NotFound("user not found"))
	suite.mockRepo.On("CreateUser", suite.ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	// Act
	created, isNew, err := suite.userService.NewUser(suite.ctx, user)

	// Assert
	suite.Require().NoError(err)
	suite.True(isNew)
	suite.Equal(domain.RoleUser, created.Role, "role is never taken from the request")
	suite.False(suite.store.Has(suite.ctx, cache.KeyAdminStats))
	suite.Equal([]string{events.UserCreated}, suite.events.Types())
}

func (suite *UserServiceTestSuite) TestNewUser_ExistingUserIsWelcomedBack() {
	// Arrange
	existing := testutil.CreateTestUser("uid-1", domain.RoleUser)
	suite.mockRepo.On("GetUser", suite.ctx, "uid-1").Return(existing, nil)

	// Act
	user, isNew, err := suite.userService.NewUser(suite.ctx, testutil.CreateTestUser("uid-1", domain.RoleUser))

	// Assert
	suite.Require().NoError(err)
	suite.False(isNew)
	suite.Equal(existing.Name, user.Name)
	suite.Empty(suite.events.Types())
}

func (suite *UserServiceTestSuite) TestGetUser_UnknownIsBadRequest() {
	// Arrange
	suite.mockRepo.On("GetUser", suite.ctx, "missing").Return(nil, errors.NotFound("user not found"))

	// Act
	user, err := suite.userService.GetUser(suite.ctx, "missing")

	// Assert
	suite.Nil(user)
	suite.True(errors.IsBadRequest(err))
	suite.Equal("Invalid Id", errors.PublicMessage(err))
}

func (suite *UserServiceTestSuite) TestDeleteUser_InvalidatesDashboard() {
	// Arrange
	suite.store.Set(suite.ctx, cache.KeyAdminPieCharts, "{}")
	suite.store.Set(suite.ctx, cache.KeyLatestProducts, "[]")
	suite.mockRepo.On("DeleteUser", suite.ctx, "uid-1").Return(nil)

	// Act
	err := suite.userService.DeleteUser(suite.ctx, "uid-1")

	// Assert
	suite.Require().NoError(err)
	suite.False(suite.store.Has(suite.ctx, cache.KeyAdminPieCharts))
	suite.True(suite.store.Has(suite.ctx, cache.KeyLatestProducts))
	suite.Equal([]string{events.UserDeleted}, suite.events.Types())
}

func (suite *UserServiceTestSuite) TestDeleteUser_Unknown() {
	// Arrange
	suite.mockRepo.On("DeleteUser", suite.ctx, "missing").Return(errors.NotFound("user not found"))

	// Act
	err := suite.userService.DeleteUser(suite.ctx, "missing")

	// Assert
	suite.True(errors.IsBadRequest(err))
	suite.Empty(suite.events.Types())
}

func (suite *UserServiceTestSuite) TestListUsers() {
	// Arrange
	users := []*domain.User{testutil.CreateTestUser("a", domain.RoleUser)}
	suite.mockRepo.On("ListUsers", suite.ctx).Return(users, nil)

	// Act
	got, err := suite.userService.ListUsers(suite.ctx)

	// Assert
	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
