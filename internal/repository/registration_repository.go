package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const registrationColumns = `id, user_id, activity_id, status, registration_time,
	       check_in_time, completion_time, notes, rating, feedback`

// PostgresRegistrationRepository implements RegistrationRepository on pgx.
//
// The capacity check is not a separate read: reserving a seat is a single
// conditional UPDATE whose WHERE clause carries the eligibility rules, so two
// concurrent registrations against the last seat cannot both pass. The
// UNIQUE(user_id, activity_id) constraint is the duplicate guard; when the
// insert trips it, the rollback also reverts the seat increment.
type PostgresRegistrationRepository struct {
	db *database.PostgresDB
}

// NewPostgresRegistrationRepository constructs a PostgresRegistrationRepository
func NewPostgresRegistrationRepository(db *database.PostgresDB) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{db: db}
}

// Create reserves a seat and inserts the registration row in one transaction
func (r *PostgresRegistrationRepository) Create(ctx context.Context, userID, activityID int64, notes string) (*domain.Registration, error) {
	reg := &domain.Registration{
		UserID:     userID,
		ActivityID: activityID,
		Status:     domain.RegistrationStatusRegistered,
		Notes:      notes,
	}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE activities
			 SET current_participants = current_participants + 1, updated_at = NOW()
			 WHERE id = $1
			   AND status = $2
			   AND start_time > NOW()
			   AND current_participants < max_participants`,
			activityID, domain.ActivityStatusActive,
		)
		if err != nil {
			return fmt.Errorf("reserve seat: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return r.diagnoseReserveFailure(ctx, tx, activityID)
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO registrations (user_id, activity_id, status, notes)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, registration_time`,
			userID, activityID, reg.Status, notes,
		).Scan(&reg.ID, &reg.RegistrationTime)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateRegistration
			}
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// diagnoseReserveFailure explains a zero-row seat reservation. It runs inside
// the same transaction so the row it inspects is the one the UPDATE saw.
func (r *PostgresRegistrationRepository) diagnoseReserveFailure(ctx context.Context, tx pgx.Tx, activityID int64) error {
	var (
		status    string
		startTime time.Time
		current   int
		max       int
	)
	err := tx.QueryRow(ctx,
		`SELECT status, start_time, current_participants, max_participants
		 FROM activities WHERE id = $1`,
		activityID,
	).Scan(&status, &startTime, &current, &max)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrActivityNotFound
		}
		return fmt.Errorf("inspect activity: %w", err)
	}
	if status != domain.ActivityStatusActive || !startTime.After(time.Now()) {
		return domain.ErrActivityNotOpen
	}
	if current >= max {
		return domain.ErrActivityFull
	}
	// The row became eligible between the UPDATE and this read. Treat the
	// attempt as full; the caller can simply retry.
	return domain.ErrActivityFull
}

// Cancel moves the registration to cancelled and releases its seat
func (r *PostgresRegistrationRepository) Cancel(ctx context.Context, userID, activityID int64) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE registrations
			 SET status = $3
			 WHERE user_id = $1 AND activity_id = $2 AND status IN ($4, $5)`,
			userID, activityID,
			domain.RegistrationStatusCancelled,
			domain.RegistrationStatusRegistered, domain.RegistrationStatusCheckedIn,
		)
		if err != nil {
			return fmt.Errorf("cancel registration: %w", err)
		}
		if tag.RowsAffected() == 0 {
			var status string
			err := tx.QueryRow(ctx,
				`SELECT status FROM registrations WHERE user_id = $1 AND activity_id = $2`,
				userID, activityID,
			).Scan(&status)
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRegistrationNotFound
			}
			if err != nil {
				return fmt.Errorf("inspect registration: %w", err)
			}
			return domain.ErrInvalidTransition
		}

		// The seat was consumed at creation whether or not the volunteer had
		// checked in, so every accepted cancellation returns it. GREATEST
		// clamps the counter at zero under a double-release race.
		_, err = tx.Exec(ctx,
			`UPDATE activities
			 SET current_participants = GREATEST(current_participants - 1, 0), updated_at = NOW()
			 WHERE id = $1`,
			activityID,
		)
		if err != nil {
			return fmt.Errorf("release seat: %w", err)
		}
		return nil
	})
}

// CheckIn moves a registered registration to checked_in
func (r *PostgresRegistrationRepository) CheckIn(ctx context.Context, registrationID, userID int64) (*domain.Registration, error) {
	row := r.db.Pool.QueryRow(ctx,
		`UPDATE registrations
		 SET status = $3, check_in_time = NOW()
		 WHERE id = $1 AND user_id = $2 AND status = $4
		 RETURNING `+registrationColumns,
		registrationID, userID,
		domain.RegistrationStatusCheckedIn, domain.RegistrationStatusRegistered,
	)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.explainMissedTransition(ctx, registrationID, userID)
		}
		return nil, fmt.Errorf("check in: %w", err)
	}
	return reg, nil
}

// Complete moves a checked-in registration to completed and credits the
// activity's volunteer hours to the user. Both writes commit together, so a
// crash can never leave a completed registration without its credit.
func (r *PostgresRegistrationRepository) Complete(ctx context.Context, registrationID, userID int64, rating *int, feedback string) (*domain.Registration, error) {
	var reg *domain.Registration
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE registrations
			 SET status = $3, completion_time = NOW(), rating = $4, feedback = $5
			 WHERE id = $1 AND user_id = $2 AND status = $6
			 RETURNING `+registrationColumns,
			registrationID, userID,
			domain.RegistrationStatusCompleted, rating, feedback,
			domain.RegistrationStatusCheckedIn,
		)
		var err error
		reg, err = scanRegistration(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.explainMissedTransition(ctx, registrationID, userID)
			}
			return fmt.Errorf("complete registration: %w", err)
		}

		var hours float64
		err = tx.QueryRow(ctx,
			`SELECT volunteer_hours FROM activities WHERE id = $1`,
			reg.ActivityID,
		).Scan(&hours)
		if err != nil {
			return fmt.Errorf("read activity hours: %w", err)
		}
		if hours > 0 {
			_, err = tx.Exec(ctx,
				`UPDATE users
				 SET volunteer_hours = volunteer_hours + $2, updated_at = NOW()
				 WHERE id = $1`,
				userID, hours,
			)
			if err != nil {
				return fmt.Errorf("credit volunteer hours: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// explainMissedTransition distinguishes a missing registration from one that
// exists but is in the wrong state for the attempted action.
func (r *PostgresRegistrationRepository) explainMissedTransition(ctx context.Context, registrationID, userID int64) error {
	var status string
	err := r.db.Pool.QueryRow(ctx,
		`SELECT status FROM registrations WHERE id = $1 AND user_id = $2`,
		registrationID, userID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRegistrationNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect registration: %w", err)
	}
	return domain.ErrInvalidTransition
}

// ListByUser returns one page of the user's registrations, newest first, each
// joined with its owning activity
func (r *PostgresRegistrationRepository) ListByUser(ctx context.Context, userID int64, filter domain.RegistrationFilter) (*domain.RegistrationPage, error) {
	where := `WHERE r.user_id = $1`
	args := []interface{}{userID}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND r.status = $%d`, len(args)+1)
		args = append(args, filter.Status)
	}

	var total int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations r `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	page, perPage := normalizePage(filter.Page, filter.PerPage)
	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.db.Pool.Query(ctx,
		`SELECT r.id, r.user_id, r.activity_id, r.status, r.registration_time,
		        r.check_in_time, r.completion_time, r.notes, r.rating, r.feedback,
		        `+activityColumnsPrefixed("a")+`
		 FROM registrations r
		 JOIN activities a ON a.id = r.activity_id
		 `+where+`
		 ORDER BY r.registration_time DESC
		 LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var regs []*domain.Registration
	for rows.Next() {
		reg := &domain.Registration{Activity: &domain.Activity{}}
		a := reg.Activity
		if err := rows.Scan(
			&reg.ID, &reg.UserID, &reg.ActivityID, &reg.Status, &reg.RegistrationTime,
			&reg.CheckInTime, &reg.CompletionTime, &reg.Notes, &reg.Rating, &reg.Feedback,
			&a.ID, &a.Title, &a.Description, &a.Location, &a.StartTime, &a.EndTime,
			&a.MaxParticipants, &a.CurrentParticipants, &a.Status, &a.Category,
			&a.VolunteerHours, &a.Requirements, &a.ContactPerson, &a.ContactPhone,
			&a.ImageURL, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		a.Derive(now)
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	return &domain.RegistrationPage{
		Registrations: regs,
		Total:         total,
		Pages:         pageCount(total, perPage),
		CurrentPage:   page,
	}, nil
}

// ListByActivity returns the roster for an activity in registration order
func (r *PostgresRegistrationRepository) ListByActivity(ctx context.Context, activityID int64) ([]*domain.Registration, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+registrationColumns+`
		 FROM registrations
		 WHERE activity_id = $1
		 ORDER BY registration_time ASC`,
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// scanRegistration scans one registration row
func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.ActivityID, &reg.Status, &reg.RegistrationTime,
		&reg.CheckInTime, &reg.CompletionTime, &reg.Notes, &reg.Rating, &reg.Feedback,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
