package domain

import "time"

// Registration status values. A registration starts as registered, moves to
// checked_in and then completed, or is cancelled from either non-terminal
// state. Completed and cancelled are terminal.
const (
	RegistrationStatusRegistered = "registered"
	RegistrationStatusCheckedIn  = "checked_in"
	RegistrationStatusCompleted  = "completed"
	RegistrationStatusCancelled  = "cancelled"
)

// Registration ties one user to one activity. The (user_id, activity_id) pair
// is unique regardless of status, so a cancelled registration still blocks a
// fresh attempt for the same activity.
type Registration struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	ActivityID       int64      `json:"activity_id"`
	Status           string     `json:"status"`
	RegistrationTime time.Time  `json:"registration_time"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CompletionTime   *time.Time `json:"completion_time,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Rating           *int       `json:"rating,omitempty"`
	Feedback         string     `json:"feedback,omitempty"`

	// Activity is populated on listing queries that join the owning activity.
	Activity *Activity `json:"activity,omitempty"`
}

// CanCheckIn reports whether a check-in transition is allowed.
func (r *Registration) CanCheckIn() bool {
	return r.Status == RegistrationStatusRegistered
}

// CanComplete reports whether a complete transition is allowed.
func (r *Registration) CanComplete() bool {
	return r.Status == RegistrationStatusCheckedIn
}

// CanCancel reports whether a cancel transition is allowed. Cancelling is
// permitted before and after check-in; both paths hold a seat that must be
// released.
func (r *Registration) CanCancel() bool {
	return r.Status == RegistrationStatusRegistered || r.Status == RegistrationStatusCheckedIn
}

// Terminal reports whether the registration is in a final state.
func (r *Registration) Terminal() bool {
	return r.Status == RegistrationStatusCompleted || r.Status == RegistrationStatusCancelled
}

// RegisterActivityRequest is the body of a registration creation request
type RegisterActivityRequest struct {
	Notes string `json:"notes"`
}

// CompleteRegistrationRequest is the body of a completion request. Rating and
// feedback are optional; a provided rating must be between 1 and 5.
type CompleteRegistrationRequest struct {
	Rating   *int   `json:"rating"`
	Feedback string `json:"feedback"`
}

// RegistrationFilter narrows registration listings
type RegistrationFilter struct {
	Status  string
	Page    int
	PerPage int
}

// RegistrationPage is one page of a registration listing
type RegistrationPage struct {
	Registrations []*Registration `json:"registrations"`
	Total         int             `json:"total"`
	Pages         int             `json:"pages"`
	CurrentPage   int             `json:"current_page"`
}
