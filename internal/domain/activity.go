package domain

import "time"

// Activity status values
const (
	ActivityStatusActive    = "active"
	ActivityStatusCompleted = "completed"
	ActivityStatusCancelled = "cancelled"
)

// Activity represents a published volunteer activity with a seat limit
type Activity struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	Status              string    `json:"status"`
	Category            string    `json:"category,omitempty"`
	VolunteerHours      float64   `json:"volunteer_hours"`
	Requirements        string    `json:"requirements,omitempty"`
	ContactPerson       string    `json:"contact_person,omitempty"`
	ContactPhone        string    `json:"contact_phone,omitempty"`
	ImageURL            string    `json:"image_url,omitempty"`
	CreatedBy           int64     `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	IsFull              bool      `json:"is_full"`
	IsOpen              bool      `json:"is_open"`
}

// Full reports whether every seat is taken.
func (a *Activity) Full() bool {
	return a.CurrentParticipants >= a.MaxParticipants
}

// OpenAt reports whether the activity accepts registrations at the given
// instant: it must be active and must not have started yet.
func (a *Activity) OpenAt(now time.Time) bool {
	return a.Status == ActivityStatusActive && a.StartTime.After(now)
}

// Derive fills the computed IsFull/IsOpen fields for serialization.
func (a *Activity) Derive(now time.Time) {
	a.IsFull = a.Full()
	a.IsOpen = a.OpenAt(now)
}

// CreateActivityRequest represents an activity creation request
type CreateActivityRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxParticipants int       `json:"max_participants"`
	Category        string    `json:"category"`
	VolunteerHours  float64   `json:"volunteer_hours"`
	Requirements    string    `json:"requirements"`
	ContactPerson   string    `json:"contact_person"`
	ContactPhone    string    `json:"contact_phone"`
	ImageURL        string    `json:"image_url"`
}

// ActivityFilter narrows activity listings
type ActivityFilter struct {
	Category string
	Status   string
	Search   string
	Page     int
	PerPage  int
}

// ActivityPage is one page of an activity listing
type ActivityPage struct {
	Activities  []*Activity `json:"activities"`
	Total       int         `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
}
