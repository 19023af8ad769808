package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate
// them into HTTP status codes.
var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a login response never reveals which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a missing, malformed, tampered
	// or expired bearer token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when an authenticated user operates on
	// an entity owned by someone else.
	ErrForbidden = errors.New("entity belongs to another user")

	// ErrGoalNotOwned is returned when a task references a goal that
	// does not exist or is owned by another user.
	ErrGoalNotOwned = errors.New("goal does not exist or belongs to another user")
)
