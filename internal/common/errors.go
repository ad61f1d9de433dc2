// Package common defines shared constants and sentinel errors used across
// the gallery server and client. Callers should use errors.Is to match them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// IsUnauthorized reports whether err belongs to the authentication failure
// family (bad credentials or an unusable token).
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrorUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenRevoked)
}

// invalidError is an ErrorValidation carrying a client-safe reason.
type invalidError struct {
	reason string
}

func (e *invalidError) Error() string { return ErrorValidation.Error() + ": " + e.reason }

func (e *invalidError) Unwrap() error { return ErrorValidation }

// Invalid wraps ErrorValidation with a reason that is safe to show to clients.
func Invalid(reason string) error {
	return &invalidError{reason: reason}
}

// ValidationReason returns the reason given to Invalid, or the sentinel's own
// text for a bare ErrorValidation. ok is false for non-validation errors.
func ValidationReason(err error) (reason string, ok bool) {
	var ie *invalidError
	if errors.As(err, &ie) {
		return ie.reason, true
	}
	if errors.Is(err, ErrorValidation) {
		return ErrorValidation.Error(), true
	}
	return "", false
}
