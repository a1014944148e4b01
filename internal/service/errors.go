package service

import (
	"errors"

	"github.com/Skotchmaster/hr_notify/internal/validation"
)

var (
	ErrEmailExists       = errors.New("email already exists")
	ErrEmailNotFound     = errors.New("email not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrNotActive         = errors.New("account is not active")
	ErrAccountNotFound   = errors.New("account not found")
	ErrNotStaff          = errors.New("staff role required")
	ErrActivationFailed  = errors.New("activation token invalid or expired")
	ErrAlreadyActive     = errors.New("account already active")
	ErrOperationFailed   = errors.New("operation failed")
)

// ValidationError carries the per-field messages of a rejected payload.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
