package apperror

import (
	"errors"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
// The status code doubles as the error kind: 400 is a validation failure, 404 a missing entity
// and 409 a capacity or state conflict.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code and message,
// so sentinel values survive being wrapped with fmt.Errorf.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates an error for malformed or out-of-range input.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NotFound creates an error for an unknown resource or holder id.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Conflict creates an error for a violated capacity or state constraint.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

func IsValidation(err error) bool { return hasCode(err, http.StatusBadRequest) }

func IsNotFound(err error) bool { return hasCode(err, http.StatusNotFound) }

func IsConflict(err error) bool { return hasCode(err, http.StatusConflict) }

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
