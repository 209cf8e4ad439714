package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrBadRequest         = errors.New("bad request")
	ErrUnavailable        = errors.New("store unavailable")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPoints      = errors.New("points must be a positive integer")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	ErrAlreadyApplied     = errors.New("referral code already applied")
	ErrNotApplied         = errors.New("referral has not been applied")
	ErrAlreadyRewarded    = errors.New("referral already rewarded")
	ErrSelfReferral       = errors.New("users cannot apply their own referral code")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func Unavailable(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, ErrUnavailable)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
