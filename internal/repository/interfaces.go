package repository

import (
	"context"

	"volunteerhub/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a new user and fills the generated ID and timestamps
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile applies the non-nil fields of the request
	UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error)

	// Statistics aggregates the user's participation counters
	Statistics(ctx context.Context, userID int64) (*domain.UserStatistics, error)
}

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	// Create inserts a new activity and fills the generated ID and timestamps
	Create(ctx context.Context, activity *domain.Activity) error

	// GetByID retrieves an activity by ID
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)

	// List returns one page of activities matching the filter
	List(ctx context.Context, filter domain.ActivityFilter) (*domain.ActivityPage, error)

	// ListByCreator returns one page of activities created by the given user
	ListByCreator(ctx context.Context, userID int64, page, perPage int) (*domain.ActivityPage, error)
}

// RegistrationRepository owns the registration lifecycle and the activity
// seat ledger. Every mutation here is a single transaction: the capacity
// guard, the seat counter, the registration row, and the volunteer-hour
// credit can never be observed half-applied.
type RegistrationRepository interface {
	// Create reserves a seat and inserts the registration row atomically
	Create(ctx context.Context, userID, activityID int64, notes string) (*domain.Registration, error)

	// Cancel moves a registered or checked-in registration to cancelled and
	// releases its seat in the same transaction
	Cancel(ctx context.Context, userID, activityID int64) error

	// CheckIn moves a registered registration to checked_in
	CheckIn(ctx context.Context, registrationID, userID int64) (*domain.Registration, error)

	// Complete moves a checked-in registration to completed and credits the
	// activity's volunteer hours to the user in the same transaction
	Complete(ctx context.Context, registrationID, userID int64, rating *int, feedback string) (*domain.Registration, error)

	// ListByUser returns one page of the user's registrations, each joined
	// with its owning activity
	ListByUser(ctx context.Context, userID int64, filter domain.RegistrationFilter) (*domain.RegistrationPage, error)

	// ListByActivity returns the roster for an activity
	ListByActivity(ctx context.Context, activityID int64) ([]*domain.Registration, error)
}
