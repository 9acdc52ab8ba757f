package repository

import (
	"context"
	"errors"
	"fmt"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/database"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, password_hash, real_name, phone, avatar,
	       role, volunteer_hours, created_at, updated_at`

// PostgresUserRepository implements UserRepository on pgx. The volunteer_hours
// column is read-only here; crediting happens inside the registration
// completion transaction.
type PostgresUserRepository struct {
	db *database.PostgresDB
}

// NewPostgresUserRepository constructs a PostgresUserRepository
func NewPostgresUserRepository(db *database.PostgresDB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, real_name, phone, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, volunteer_hours, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.RealName, u.Phone, u.Role,
	).Scan(&u.ID, &u.VolunteerHours, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// The username index fires before the email one; recheck which
			// value collided so the caller gets a precise reason.
			if taken, lookupErr := r.usernameTaken(ctx, u.Username); lookupErr == nil && taken {
				return domain.ErrUsernameTaken
			}
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) usernameTaken(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE username = $1`, username,
	).Scan(&n)
	return n > 0, err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

// GetByUsername retrieves a user by username
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *PostgresUserRepository) getBy(ctx context.Context, cond string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+cond, arg,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RealName, &u.Phone,
		&u.Avatar, &u.Role, &u.VolunteerHours, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies the non-nil fields of the request and returns the
// updated user
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE users
		 SET real_name = COALESCE($2, real_name),
		     phone     = COALESCE($3, phone),
		     avatar    = COALESCE($4, avatar),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, req.RealName, req.Phone, req.Avatar,
	).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.RealName, &u.Phone,
		&u.Avatar, &u.Role, &u.VolunteerHours, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &u, nil
}

// Statistics aggregates the user's participation counters in one query
func (r *PostgresUserRepository) Statistics(ctx context.Context, userID int64) (*domain.UserStatistics, error) {
	var stats domain.UserStatistics
	err := r.db.Pool.QueryRow(ctx,
		`SELECT
		    COUNT(r.id),
		    COUNT(r.id) FILTER (WHERE r.status = 'completed'),
		    COUNT(r.id) FILTER (WHERE r.status = 'checked_in'),
		    COUNT(r.id) FILTER (WHERE r.status = 'cancelled'),
		    (SELECT COUNT(*) FROM activities WHERE created_by = $1),
		    (SELECT volunteer_hours FROM users WHERE id = $1)
		 FROM registrations r
		 WHERE r.user_id = $1`,
		userID,
	).Scan(
		&stats.TotalRegistrations,
		&stats.CompletedActivities,
		&stats.CheckedInActivities,
		&stats.CancelledActivities,
		&stats.CreatedActivities,
		&stats.VolunteerHours,
	)
	if err != nil {
		return nil, fmt.Errorf("user statistics: %w", err)
	}
	return &stats, nil
}
