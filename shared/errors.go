package shared

import (
	"errors"
	"net/http"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindConflict     ErrorKind = "CONFLICT"
	KindRateLimited  ErrorKind = "RATE_LIMITED"
	KindInternal     ErrorKind = "INTERNAL"
)

// AppError is the only error type that crosses the service boundary. The
// wrapped Err is kept for logging and is never written to a response.
type AppError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func newAppError(kind ErrorKind, err error, message string) *AppError {
	return &AppError{
		Kind:       kind,
		StatusCode: StatusFor(kind),
		Message:    message,
		Err:        err,
	}
}

func NewBadRequestError(err error, message string) *AppError {
	return newAppError(KindValidation, err, message)
}

func NewValidationError(message string, data interface{}) *AppError {
	appErr := newAppError(KindValidation, nil, message)
	appErr.Data = data
	return appErr
}

func NewUnauthorizedError(err error, message string) *AppError {
	return newAppError(KindUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return newAppError(KindForbidden, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return newAppError(KindNotFound, err, message)
}

func NewConflictError(err error, message string) *AppError {
	return newAppError(KindConflict, err, message)
}

func NewRateLimitedError(message string) *AppError {
	return newAppError(KindRateLimited, nil, message)
}

func NewInternalError(err error, message string) *AppError {
	return newAppError(KindInternal, err, message)
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.Kind == kind
}
