package service

import (
	"context"
	"testing"
	"time"

	"volunteerhub/internal/domain"
	apperrors "volunteerhub/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockActivityRepository mocks repository.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) (*domain.ActivityPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityPage), args.Error(1)
}

func (m *MockActivityRepository) ListByCreator(ctx context.Context, userID int64, page, perPage int) (*domain.ActivityPage, error) {
	args := m.Called(ctx, userID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityPage), args.Error(1)
}

func newTestActivityService(activities *MockActivityRepository, registrations *MockRegistrationRepository) *ActivityService {
	logger := zap.NewNop()
	cache := NewCacheService(nil, logger)
	return NewActivityService(activities, registrations, cache, logger)
}

func validCreateRequest() *domain.CreateActivityRequest {
	start := time.Now().Add(48 * time.Hour)
	return &domain.CreateActivityRequest{
		Title:           "Park Cleanup",
		Description:     "Help clean up the riverside park.",
		Location:        "Riverside Park",
		StartTime:       start,
		EndTime:         start.Add(3 * time.Hour),
		MaxParticipants: 30,
		Category:        "environment",
		VolunteerHours:  3,
	}
}

func TestActivityService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.CreateActivityRequest)
	}{
		{
			name:   "Missing title",
			mutate: func(req *domain.CreateActivityRequest) { req.Title = "  " },
		},
		{
			name:   "Missing description",
			mutate: func(req *domain.CreateActivityRequest) { req.Description = "" },
		},
		{
			name:   "Missing location",
			mutate: func(req *domain.CreateActivityRequest) { req.Location = "" },
		},
		{
			name:   "Zero start time",
			mutate: func(req *domain.CreateActivityRequest) { req.StartTime = time.Time{} },
		},
		{
			name:   "Start after end",
			mutate: func(req *domain.CreateActivityRequest) { req.StartTime = req.EndTime.Add(time.Hour) },
		},
		{
			name:   "Start equal to end",
			mutate: func(req *domain.CreateActivityRequest) { req.StartTime = req.EndTime },
		},
		{
			name:   "Zero max participants",
			mutate: func(req *domain.CreateActivityRequest) { req.MaxParticipants = 0 },
		},
		{
			name:   "Negative max participants",
			mutate: func(req *domain.CreateActivityRequest) { req.MaxParticipants = -5 },
		},
		{
			name:   "Negative volunteer hours",
			mutate: func(req *domain.CreateActivityRequest) { req.VolunteerHours = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activities := new(MockActivityRepository)
			svc := newTestActivityService(activities, new(MockRegistrationRepository))

			req := validCreateRequest()
			tt.mutate(req)

			activity, err := svc.Create(context.Background(), 1, req)

			assert.Nil(t, activity)
			var appErr *apperrors.AppError
			assert.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			activities.AssertNotCalled(t, "Create")
		})
	}
}

func TestActivityService_Create_Success(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := newTestActivityService(activities, new(MockRegistrationRepository))

	activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
		return a.Title == "Park Cleanup" &&
			a.Status == domain.ActivityStatusActive &&
			a.CreatedBy == int64(9) &&
			a.CurrentParticipants == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Activity).ID = 5
	}).Return(nil)

	activity, err := svc.Create(context.Background(), 9, validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(5), activity.ID)
	assert.True(t, activity.IsOpen)
	assert.False(t, activity.IsFull)
	activities.AssertExpectations(t)
}

func TestActivityService_Get_DerivesFlags(t *testing.T) {
	activities := new(MockActivityRepository)
	svc := newTestActivityService(activities, new(MockRegistrationRepository))

	activities.On("GetByID", mock.Anything, int64(5)).Return(&domain.Activity{
		ID:                  5,
		Status:              domain.ActivityStatusActive,
		StartTime:           time.Now().Add(time.Hour),
		MaxParticipants:     10,
		CurrentParticipants: 10,
	}, nil)

	activity, err := svc.Get(context.Background(), 5)

	require.NoError(t, err)
	assert.True(t, activity.IsFull)
	assert.True(t, activity.IsOpen)
	activities.AssertExpectations(t)
}

func TestActivityService_Roster_UnknownActivity(t *testing.T) {
	activities := new(MockActivityRepository)
	registrations := new(MockRegistrationRepository)
	svc := newTestActivityService(activities, registrations)

	activities.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrActivityNotFound)

	roster, err := svc.Roster(context.Background(), 404)

	assert.Nil(t, roster)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
	registrations.AssertNotCalled(t, "ListByActivity")
}

func TestActivityService_Roster(t *testing.T) {
	activities := new(MockActivityRepository)
	registrations := new(MockRegistrationRepository)
	svc := newTestActivityService(activities, registrations)

	activities.On("GetByID", mock.Anything, int64(5)).Return(&domain.Activity{ID: 5}, nil)
	registrations.On("ListByActivity", mock.Anything, int64(5)).Return([]*domain.Registration{
		{ID: 1, ActivityID: 5, Status: domain.RegistrationStatusRegistered},
		{ID: 2, ActivityID: 5, Status: domain.RegistrationStatusCheckedIn},
	}, nil)

	roster, err := svc.Roster(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, roster, 2)
	activities.AssertExpectations(t)
	registrations.AssertExpectations(t)
}
