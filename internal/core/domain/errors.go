package domain

import "errors"

var (
	// ErrUserExists is returned when registering an email already in use.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when an identity lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrBookingNotFound covers both a missing booking and a booking owned by
	// someone else. Merging the two hides whether the row exists at all.
	ErrBookingNotFound = errors.New("booking not found or not authorized")

	ErrCampgroundNotFound = errors.New("campground not found")

	// ErrInvalidID is returned when a path parameter is not a 24-hex object id.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidInput is returned for malformed or incomplete request payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenInvalid is returned for tokens with bad signatures, malformed
	// structure, past expiry, or a revoked jti.
	ErrTokenInvalid = errors.New("invalid token")
)

// ValidationError carries a caller-facing message for malformed input.
// errors.Is(err, ErrInvalidInput) matches every ValidationError.
type ValidationError struct{ msg string }

// NewValidationError wraps a message as a ValidationError.
func NewValidationError(msg string) error { return &ValidationError{msg: msg} }

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }
