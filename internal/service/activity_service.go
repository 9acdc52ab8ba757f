package service

import (
	"context"
	"strings"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/internal/repository"
	apperrors "volunteerhub/pkg/errors"

	"go.uber.org/zap"
)

// ActivityService owns activity publishing and read paths. Seat accounting
// is deliberately absent here; it lives in the registration transactions.
type ActivityService struct {
	activities    repository.ActivityRepository
	registrations repository.RegistrationRepository
	cache         *CacheService
	logger        *zap.Logger
}

// NewActivityService constructs an ActivityService
func NewActivityService(
	activities repository.ActivityRepository,
	registrations repository.RegistrationRepository,
	cache *CacheService,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		activities:    activities,
		registrations: registrations,
		cache:         cache,
		logger:        logger,
	}
}

// Create validates the request and publishes a new activity for the caller
func (s *ActivityService) Create(ctx context.Context, creatorID int64, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)

	if err := validateCreateActivityRequest(req); err != nil {
		return nil, err
	}

	activity := &domain.Activity{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
		Status:          domain.ActivityStatusActive,
		Category:        req.Category,
		VolunteerHours:  req.VolunteerHours,
		Requirements:    req.Requirements,
		ContactPerson:   req.ContactPerson,
		ContactPhone:    req.ContactPhone,
		ImageURL:        req.ImageURL,
		CreatedBy:       creatorID,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	activity.Derive(time.Now())

	s.logger.Info("Activity created",
		zap.Int64("activity_id", activity.ID),
		zap.Int64("created_by", creatorID),
		zap.Int("max_participants", activity.MaxParticipants))

	return activity, nil
}

// List returns one page of activities matching the filter
func (s *ActivityService) List(ctx context.Context, filter domain.ActivityFilter) (*domain.ActivityPage, error) {
	return s.activities.List(ctx, filter)
}

// Get returns one activity, served from cache when possible
func (s *ActivityService) Get(ctx context.Context, id int64) (*domain.Activity, error) {
	activity, err := s.cache.GetActivityWithCache(ctx, id, s.activities.GetByID)
	if err != nil {
		return nil, err
	}
	activity.Derive(time.Now())
	return activity, nil
}

// ListByCreator returns one page of activities created by the given user
func (s *ActivityService) ListByCreator(ctx context.Context, userID int64, page, perPage int) (*domain.ActivityPage, error) {
	return s.activities.ListByCreator(ctx, userID, page, perPage)
}

// Roster returns every registration for an activity
func (s *ActivityService) Roster(ctx context.Context, activityID int64) ([]*domain.Registration, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return nil, err
	}
	return s.registrations.ListByActivity(ctx, activityID)
}

// validateCreateActivityRequest checks the activity invariants before any
// write: start < end, a positive seat limit, non-negative hour credit.
func validateCreateActivityRequest(req *domain.CreateActivityRequest) error {
	if req.Title == "" {
		return apperrors.NewValidationError("title is required", nil)
	}
	if req.Description == "" {
		return apperrors.NewValidationError("description is required", nil)
	}
	if req.Location == "" {
		return apperrors.NewValidationError("location is required", nil)
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return apperrors.NewValidationError("start_time and end_time are required", nil)
	}
	if !req.StartTime.Before(req.EndTime) {
		return apperrors.NewValidationError("start_time must be before end_time", nil)
	}
	if req.MaxParticipants <= 0 {
		return apperrors.NewValidationError("max_participants must be a positive integer", nil)
	}
	if req.VolunteerHours < 0 {
		return apperrors.NewValidationError("volunteer_hours cannot be negative", nil)
	}
	return nil
}
