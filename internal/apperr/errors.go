// Package apperr holds the error values shared by the stores, services and
// transports of the link tracker.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a token or record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique key is already taken.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when a request carries no valid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller does not own the record.
var ErrForbidden = errors.New("forbidden")

// ErrUsernameTaken is returned when another profile already uses the username.
var ErrUsernameTaken = fmt.Errorf("username taken: %w", ErrConflict)

// ErrEmailTaken is returned when an account with the email already exists.
var ErrEmailTaken = fmt.Errorf("email taken: %w", ErrConflict)

// ErrInvalidCredentials is returned on a failed sign-in.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

// ValidationError is returned when input is rejected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Kind groups errors by how callers should react to them.
type Kind int

const (
	// KindTransient covers store and network failures. The user may retry.
	KindTransient Kind = iota
	KindNotFound
	KindAuthorization
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "transient"
	}
}

// KindOf classifies err. Unknown errors are treated as transient.
func KindOf(err error) Kind {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindTransient
	}
}
