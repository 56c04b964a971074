package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidTimeWindow = errors.New("invalid time window")
	ErrEmptyPOIPool      = errors.New("empty poi pool")
	ErrNoAccommodation   = errors.New("no accommodation location")
	ErrPOINotFound       = errors.New("poi not found")
	ErrJourneyNotFound   = errors.New("journey not found")
	ErrPersistenceOff    = errors.New("persistence is not configured")
	ErrDatabaseError     = errors.New("database error")
)

// ScheduleError is the failure result of a scheduling run. Kind is one of the
// sentinel errors above so callers can branch with errors.Is.
type ScheduleError struct {
	Kind    error
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("schedule trip: %s: %s", e.Kind, e.Message)
}

func (e *ScheduleError) Unwrap() error { return e.Kind }

func NewScheduleError(kind error, format string, args ...any) *ScheduleError {
	return &ScheduleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
