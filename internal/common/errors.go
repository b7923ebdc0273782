// Package common holds the error taxonomy shared across layers.
// Handlers map these sentinels to HTTP status codes; services wrap
// them with the failed precondition.
package common

import "errors"

var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrMissingToken is returned when an operation requires a
	// credential and none was supplied.
	ErrMissingToken = errors.New("token missing")
	// ErrInvalidToken is returned when a supplied credential cannot
	// be verified (bad signature, malformed, expired).
	ErrInvalidToken = errors.New("token invalid")
	// ErrUnknownUser is returned when a verified credential's subject
	// does not correspond to any existing user.
	ErrUnknownUser = errors.New("unknown user")
	// ErrForbidden is returned when a valid identity is not the owner
	// of the resource it tries to mutate.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a resource id resolves to nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("duplicate value")
	// ErrBadCredentials is returned when a login attempt names an
	// unknown user or the wrong password. Deliberately one sentinel
	// for both cases.
	ErrBadCredentials = errors.New("invalid username or password")
)

// validationError carries the failed precondition as its message while
// matching ErrValidation under errors.Is.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// NewValidation returns an error that reports msg to the caller and
// unwraps to ErrValidation.
func NewValidation(msg string) error {
	return &validationError{msg: msg}
}
