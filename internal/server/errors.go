package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrCVNotFound indicates a CV was not found
type ErrCVNotFound struct {
	ID uuid.UUID
}

func (e *ErrCVNotFound) Error() string {
	return fmt.Sprintf("CV not found: %s", e.ID)
}

// ErrQuotaExceeded indicates the plan's CV limit is reached
type ErrQuotaExceeded struct {
	Limit int
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("CV limit reached for this plan (%d)", e.Limit)
}

// ErrPlanForbids indicates the plan does not include the requested feature
type ErrPlanForbids struct {
	Feature string
}

func (e *ErrPlanForbids) Error() string {
	return fmt.Sprintf("your plan does not include %s", e.Feature)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrCVNotFound:
		return http.StatusNotFound
	case *ErrQuotaExceeded, *ErrPlanForbids:
		return http.StatusForbidden
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
