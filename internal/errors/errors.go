// Package errors defines the closed set of failure kinds the auth service can
// surface, each carrying the stable wire code and HTTP status the boundary
// layer maps it to.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. The set is closed: anything that does not fit one
// of the domain kinds collapses to KindSystem so internal detail never reaches
// a client.
type Kind int

const (
	KindInvalidCredentials Kind = iota
	KindUserNotFound
	KindInvalidToken
	KindUnauthorized
	KindUserAlreadyExists
	KindValidation
	KindSystem
)

// Error is a domain failure with a stable code and human-readable message.
type Error struct {
	Kind    Kind
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches two *Error values by Kind, so errors.Is works against the
// constructors below regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message}
}

// InvalidCredentials reports a password mismatch for an existing user.
func InvalidCredentials(message string) *Error {
	return newError(KindInvalidCredentials, "AUTH-001", http.StatusUnauthorized, message)
}

// UserNotFound reports that no user matches the given username or ID.
func UserNotFound(message string) *Error {
	return newError(KindUserNotFound, "AUTH-002", http.StatusNotFound, message)
}

// InvalidToken reports a malformed, expired, wrong-kind, or badly signed token.
func InvalidToken(message string) *Error {
	return newError(KindInvalidToken, "AUTH-003", http.StatusUnauthorized, message)
}

// UserAlreadyExists reports a registration attempt for a taken username.
func UserAlreadyExists(message string) *Error {
	return newError(KindUserAlreadyExists, "AUTH-004", http.StatusConflict, message)
}

// Validation reports a malformed request shape.
func Validation(message string) *Error {
	return newError(KindValidation, "AUTH-005", http.StatusBadRequest, message)
}

// Unauthorized reports a valid identity without rights to the requested
// company, or an expired/consumed session token.
func Unauthorized(message string) *Error {
	return newError(KindUnauthorized, "AUTH-006", http.StatusForbidden, message)
}

// System wraps any unexpected failure behind a single generic code.
func System(message string) *Error {
	return newError(KindSystem, "SYS-001", http.StatusInternalServerError, message)
}

// FromErr returns err's *Error if it carries one, or a generic system error.
// Unclassified failures never expose their original message.
func FromErr(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return System("internal server error")
}

// Wrapf wraps an error with context using fmt.Errorf.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
