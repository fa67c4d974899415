package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document or account does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists is returned when an account already uses the e-mail.
	ErrEmailExists = errors.New("email address is already in use by another account")
	// ErrInvalidCredentials is returned for a wrong e-mail/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAdmin is returned when a valid account lacks the admin role.
	ErrNotAdmin = errors.New("you do not have admin privileges")
	// ErrUnauthenticated is returned for a missing, malformed or expired token.
	ErrUnauthenticated = errors.New("session expired, please login again")
)

// PersistenceError reports a write the store rejected or could not carry
// out. No part of the write is applied.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError reports input that was rejected before any side effect.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
