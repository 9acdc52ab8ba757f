package service

import (
	"context"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository"
	apperrors "volunteerhub/pkg/errors"

	"go.uber.org/zap"
)

// RegistrationService drives the registration lifecycle. The atomicity of
// each transition lives in the repository; this layer validates input,
// invalidates caches, and logs.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	cache         *CacheService
	logger        *zap.Logger
}

// NewRegistrationService constructs a RegistrationService
func NewRegistrationService(registrations repository.RegistrationRepository, cache *CacheService, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		cache:         cache,
		logger:        logger,
	}
}

// Register creates a registration for the caller on the given activity
func (s *RegistrationService) Register(ctx context.Context, userID, activityID int64, notes string) (*domain.Registration, error) {
	reg, err := s.registrations.Create(ctx, userID, activityID, notes)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateActivity(ctx, activityID)
	s.cache.InvalidateUserStatistics(ctx, userID)

	s.logger.Info("Registration created",
		zap.Int64("registration_id", reg.ID),
		zap.Int64("user_id", userID),
		zap.Int64("activity_id", activityID))

	return reg, nil
}

// Cancel cancels the caller's registration on the given activity and
// releases the seat
func (s *RegistrationService) Cancel(ctx context.Context, userID, activityID int64) error {
	if err := s.registrations.Cancel(ctx, userID, activityID); err != nil {
		return err
	}

	s.cache.InvalidateActivity(ctx, activityID)
	s.cache.InvalidateUserStatistics(ctx, userID)

	s.logger.Info("Registration cancelled",
		zap.Int64("user_id", userID),
		zap.Int64("activity_id", activityID))

	return nil
}

// CheckIn marks the caller as present at the activity
func (s *RegistrationService) CheckIn(ctx context.Context, registrationID, userID int64) (*domain.Registration, error) {
	reg, err := s.registrations.CheckIn(ctx, registrationID, userID)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUserStatistics(ctx, userID)

	s.logger.Info("Registration checked in",
		zap.Int64("registration_id", registrationID),
		zap.Int64("user_id", userID))

	return reg, nil
}

// Complete finishes the caller's checked-in registration, storing the
// optional rating and feedback and crediting the activity's volunteer hours
func (s *RegistrationService) Complete(ctx context.Context, registrationID, userID int64, req *domain.CompleteRegistrationRequest) (*domain.Registration, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	reg, err := s.registrations.Complete(ctx, registrationID, userID, req.Rating, req.Feedback)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUserStatistics(ctx, userID)

	s.logger.Info("Registration completed",
		zap.Int64("registration_id", registrationID),
		zap.Int64("user_id", userID))

	return reg, nil
}

// MyRegistrations returns one page of the caller's registrations
func (s *RegistrationService) MyRegistrations(ctx context.Context, userID int64, filter domain.RegistrationFilter) (*domain.RegistrationPage, error) {
	return s.registrations.ListByUser(ctx, userID, filter)
}
