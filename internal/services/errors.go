package services

import "errors"

// Sentinel errors the handlers map onto HTTP statuses. Services wrap
// these with %w and context; handlers test with errors.Is and never
// surface internal detail on anything else.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrConflict             = errors.New("already exists")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrInstructorUnresolved = errors.New("no instructor resolvable for class")
	ErrFeedbackLocked       = errors.New("feedback is no longer editable")
)
