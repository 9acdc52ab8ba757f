package domain

import "errors"

// Sentinel errors surfaced by the registration core. Handlers translate these
// into stable API error responses; anything else is treated as internal.
var (
	// ErrActivityNotFound means the activity id does not resolve.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityNotOpen means the activity is inactive or has already started.
	ErrActivityNotOpen = errors.New("activity is not open for registration")

	// ErrActivityFull means every seat is taken.
	ErrActivityFull = errors.New("activity is full")

	// ErrDuplicateRegistration means the (user, activity) pair already has a
	// registration row, in any status.
	ErrDuplicateRegistration = errors.New("already registered for this activity")

	// ErrRegistrationNotFound means the registration id does not resolve for
	// the calling user.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrInvalidTransition means the requested lifecycle action is not valid
	// from the registration's current status.
	ErrInvalidTransition = errors.New("invalid registration state transition")

	// ErrUserNotFound means the user id does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken and ErrEmailTaken are account registration conflicts.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
