package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/database"

	"github.com/jackc/pgx/v5"
)

const activityColumns = `id, title, description, location, start_time, end_time,
	       max_participants, current_participants, status, category, volunteer_hours,
	       requirements, contact_person, contact_phone, image_url, created_by,
	       created_at, updated_at`

// activityColumnsPrefixed qualifies the activity column list with a table
// alias for joined queries.
func activityColumnsPrefixed(alias string) string {
	cols := strings.Split(activityColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

// PostgresActivityRepository implements ActivityRepository on pgx. It never
// writes current_participants; that counter belongs to the registration
// transactions.
type PostgresActivityRepository struct {
	db *database.PostgresDB
}

// NewPostgresActivityRepository constructs a PostgresActivityRepository
func NewPostgresActivityRepository(db *database.PostgresDB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// Create inserts a new activity
func (r *PostgresActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO activities (title, description, location, start_time, end_time,
		        max_participants, status, category, volunteer_hours, requirements,
		        contact_person, contact_phone, image_url, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, current_participants, created_at, updated_at`,
		a.Title, a.Description, a.Location, a.StartTime, a.EndTime,
		a.MaxParticipants, a.Status, a.Category, a.VolunteerHours, a.Requirements,
		a.ContactPerson, a.ContactPhone, a.ImageURL, a.CreatedBy,
	).Scan(&a.ID, &a.CurrentParticipants, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID retrieves an activity by ID
func (r *PostgresActivityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id,
	)
	a, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

// List returns one page of activities matching the filter, newest first
func (r *PostgresActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) (*domain.ActivityPage, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM activities `+where, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	page, perPage := normalizePage(filter.Page, filter.PerPage)
	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.db.Pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM activities %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			activityColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}

	return &domain.ActivityPage{
		Activities:  activities,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}

// ListByCreator returns one page of activities created by the given user
func (r *PostgresActivityRepository) ListByCreator(ctx context.Context, userID int64, page, perPage int) (*domain.ActivityPage, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM activities WHERE created_by = $1`, userID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	page, perPage = normalizePage(page, perPage)
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+activityColumns+`
		 FROM activities
		 WHERE created_by = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities by creator: %w", err)
	}
	defer rows.Close()

	activities, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}

	return &domain.ActivityPage{
		Activities:  activities,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}

// collectActivities drains rows into activities with derived fields filled
func collectActivities(rows pgx.Rows) ([]*domain.Activity, error) {
	now := time.Now()
	var activities []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Derive(now)
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// scanActivity scans one activity row
func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Location, &a.StartTime, &a.EndTime,
		&a.MaxParticipants, &a.CurrentParticipants, &a.Status, &a.Category,
		&a.VolunteerHours, &a.Requirements, &a.ContactPerson, &a.ContactPhone,
		&a.ImageURL, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
