package service

import (
	"context"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository"

	"go.uber.org/zap"
)

// UserService owns profile reads/updates and participation statistics
type UserService struct {
	users  repository.UserRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewUserService constructs a UserService
func NewUserService(users repository.UserRepository, cache *CacheService, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// Profile returns the user's profile
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of the request
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", zap.Int64("user_id", userID))
	return user, nil
}

// Statistics returns the user's participation statistics, cached briefly
func (s *UserService) Statistics(ctx context.Context, userID int64) (*domain.UserStatistics, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.cache.GetStatisticsWithCache(ctx, userID, s.users.Statistics)
}
