// Package apperrors provides coded errors shared across the service.
// Codes are stable machine-readable strings; messages are for humans.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeValidation   Code = "VALIDATION"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeConflict     Code = "CONFLICT"
	ErrCodeUnauthorized Code = "UNAUTHORIZED"
	ErrCodeInternal     Code = "INTERNAL"
)

// Error is a coded application error. It optionally wraps a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates a cause with a code and message.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// NotFound reports a missing resource by kind and identifier.
func NotFound(resource, id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, id)}
}

// InvalidInput reports a validation failure on a named field.
func InvalidInput(field, message string) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf("%s: %s", field, message)}
}

// Conflict reports a state conflict (e.g. duplicate open request).
func Conflict(message string) *Error {
	return &Error{Code: ErrCodeConflict, Message: message}
}

// Unauthorized reports a failed authority or stage check.
func Unauthorized(message string) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: message}
}

// CodeOf extracts the code from err, or ErrCodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// HTTPStatus maps an error to the HTTP status the transport should return.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
