// Package apperrors defines the expected, caller-recoverable error outcomes
// of the marketplace core. Each carries a stable machine-readable code plus a
// human message; anything not wrapped in one of these is treated as an
// internal fault and surfaced generically.
package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies the class of an expected failure.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeForbidden  Code = "FORBIDDEN"
	CodeConflict   Code = "CONFLICT"
)

// Error is an expected application error. It is never retried by the core;
// callers may retry CONFLICT outcomes after a fresh read.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or out-of-range input, rejected before any
// storage access.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a referenced entity that is absent or soft-deleted.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Forbidden reports an authenticated identity lacking ownership or role.
func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a business-rule violation such as insufficient stock.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// From extracts the application error from err's chain, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	appErr, ok := From(err)
	return ok && appErr.Code == code
}
