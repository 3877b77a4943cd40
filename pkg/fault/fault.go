// Package fault defines the error taxonomy shared by every service:
// validation, not_found, forbidden, transient and resolution_failed.
// Only transient errors are safe to retry.
package fault

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and for HTTP mapping.
type Code string

const (
	CodeValidation       Code = "validation"
	CodeNotFound         Code = "not_found"
	CodeForbidden        Code = "forbidden"
	CodeTransient        Code = "transient"
	CodeResolutionFailed Code = "resolution_failed"
)

// Error is a classified application error, optionally wrapping a cause.
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

// Retryable reports whether the operation may be retried with backoff.
func (e *Error) Retryable() bool { return e.Code == CodeTransient }

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// Transient wraps an I/O or backend failure; err may be nil.
func Transient(err error, format string, args ...any) *Error {
	return &Error{Code: CodeTransient, Message: fmt.Sprintf(format, args...), Err: err}
}

// ResolutionFailed marks an identity/role lookup failure. Callers must not
// fall back to a permissive role when they see it.
func ResolutionFailed(err error, format string, args ...any) *Error {
	return &Error{Code: CodeResolutionFailed, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of err, or the empty string when err carries no
// classification.
func CodeOf(err error) Code {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

func IsValidation(err error) bool       { return CodeOf(err) == CodeValidation }
func IsNotFound(err error) bool         { return CodeOf(err) == CodeNotFound }
func IsForbidden(err error) bool        { return CodeOf(err) == CodeForbidden }
func IsTransient(err error) bool        { return CodeOf(err) == CodeTransient }
func IsResolutionFailed(err error) bool { return CodeOf(err) == CodeResolutionFailed }

// Retryable reports whether err is safe to retry. Unclassified errors are
// not retryable.
func Retryable(err error) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}
