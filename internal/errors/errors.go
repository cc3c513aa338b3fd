package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the common interface of every typed error in the service.
// Handlers use it to pick the HTTP status and the category of the response body.
type AppError interface {
	Error() string
	Category() string // e.g. "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR"
	HTTPStatus() int
	Unwrap() error
}

// ValidationError reports malformed input: a bad id, a bad JSON body.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Validation error: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return e.Err }

func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// WrapValidationError keeps the decoding error that caused the rejection.
func WrapValidationError(msg string, err error) AppError {
	return &ValidationError{Msg: msg, Err: err}
}

// NotFoundError reports a record that does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Resource not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// TooManyRequestsError is returned by the rate limiter.
type TooManyRequestsError struct {
	Msg string
}

func (e *TooManyRequestsError) Error() string    { return fmt.Sprintf("Rate limit exceeded: %s", e.Msg) }
func (e *TooManyRequestsError) Category() string { return "RATE_LIMITED" }
func (e *TooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *TooManyRequestsError) Unwrap() error    { return nil }

func NewTooManyRequestsError(msg string) AppError {
	return &TooManyRequestsError{Msg: msg}
}

// InternalError represents unexpected failures in the service or storage.
type InternalError struct {
	Msg string
	Err error // underlying cause, e.g. a storage error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Internal error: %s", e.Msg)
	}
	return fmt.Sprintf("Internal error: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewStoreError is a shortcut for an InternalError raised by the in-memory store.
func NewStoreError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (store)", msg), err)
}

// IsNotFound reports whether any error in err's chain is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return stderrors.As(err, &notFound)
}

// MapToHTTPStatus translates an error into status code, category and message.
// Errors that carry no AppError in their chain become a generic 500.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			// never leak the underlying cause to clients
			return appErr.HTTPStatus(), appErr.Category(), "An unexpected error occurred."
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "An unexpected error occurred."
}
