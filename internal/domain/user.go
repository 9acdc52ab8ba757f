package domain

import "time"

// User represents an account in the system. PasswordHash is never serialized.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	RealName       string    `json:"real_name"`
	Phone          string    `json:"phone,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Role           string    `json:"role"`
	VolunteerHours float64   `json:"volunteer_hours"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RealName string `json:"real_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token together with the user profile
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// UpdateProfileRequest represents a profile update. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	RealName *string `json:"real_name"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
}

// UserStatistics aggregates a volunteer's participation history
type UserStatistics struct {
	TotalRegistrations  int     `json:"total_registrations"`
	CompletedActivities int     `json:"completed_activities"`
	CheckedInActivities int     `json:"checked_in_activities"`
	CancelledActivities int     `json:"cancelled_activities"`
	CreatedActivities   int     `json:"created_activities"`
	VolunteerHours      float64 `json:"volunteer_hours"`
}
