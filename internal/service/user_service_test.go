package service

import (
	"context"
	"testing"

	"volunteerhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository mocks repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Statistics(ctx context.Context, userID int64) (*domain.UserStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatistics), args.Error(1)
}

func newTestUserService(users *MockUserRepository) *UserService {
	logger := zap.NewNop()
	return NewUserService(users, NewCacheService(nil, logger), logger)
}

func TestUserService_Profile(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestUserService(users)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42, Username: "volunteer1"}, nil)

	user, err := svc.Profile(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, "volunteer1", user.Username)
	users.AssertExpectations(t)
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestUserService(users)

	name := "New Name"
	req := &domain.UpdateProfileRequest{RealName: &name}
	users.On("UpdateProfile", mock.Anything, int64(42), req).Return(&domain.User{ID: 42, RealName: name}, nil)

	user, err := svc.UpdateProfile(context.Background(), 42, req)

	require.NoError(t, err)
	assert.Equal(t, name, user.RealName)
	users.AssertExpectations(t)
}

func TestUserService_Statistics_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestUserService(users)

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrUserNotFound)

	stats, err := svc.Statistics(context.Background(), 404)

	assert.Nil(t, stats)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	users.AssertNotCalled(t, "Statistics")
}

func TestUserService_Statistics(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestUserService(users)

	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)
	users.On("Statistics", mock.Anything, int64(42)).Return(&domain.UserStatistics{
		TotalRegistrations:  4,
		CompletedActivities: 2,
		VolunteerHours:      6,
	}, nil)

	stats, err := svc.Statistics(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalRegistrations)
	assert.Equal(t, float64(6), stats.VolunteerHours)
	users.AssertExpectations(t)
}
