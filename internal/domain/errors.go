package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCapacityExceeded    = errors.New("capacity exceeded")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrResourceClosed      = errors.New("resource closed")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrResourceExists      = errors.New("resource already exists")
	ErrReservationExists   = errors.New("reservation already exists")
)

// ValidationError reports which field of a raw input violated which rule.
// It unwraps to ErrValidation so callers can match the whole class.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, rule string) error {
	return &ValidationError{Field: field, Rule: rule}
}
