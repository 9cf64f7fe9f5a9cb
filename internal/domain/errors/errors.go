package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrConflict           = errors.New("conflict")
)

// Ride and membership errors
var (
	ErrRideNotFound      = errors.New("ride not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrAlreadyVerified   = errors.New("user already verified")
	ErrAlreadyJoined     = errors.New("already joined ride")
	ErrNotParticipant    = errors.New("not a ride participant")
	ErrCaptainCannotJoin = errors.New("captain cannot join own ride")
	ErrRideNotUpcoming   = errors.New("ride not upcoming")
	ErrRideNotPending    = errors.New("ride not pending approval")
	ErrSameStatus        = errors.New("status unchanged")
)

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeBadRequest, message, ErrInvalidInput)
}

// Validation carries per-field messages.
func Validation(details map[string]string) *AppError {
	e := NewAppError(http.StatusBadRequest, CodeValidation, "Invalid input.", ErrInvalidInput)
	e.Details = details
	return e
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}

// Wrap attaches a domain sentinel to an AppError so callers can still match it with errors.Is.
func Wrap(appErr *AppError, sentinel error) *AppError {
	appErr.Err = sentinel
	return appErr
}

// AsAppError extracts an AppError from the chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
