package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	// ErrBadRequest marks a request that could not be read at all, as opposed to one
	// that was read and failed validation.
	ErrBadRequest = errors.New("bad request")
)

// Roster errors
var (
	ErrSubjectNotFound = fmt.Errorf("subject not found: %w", ErrResourceNotFound)
	ErrRoomNotFound    = fmt.Errorf("room not found: %w", ErrResourceNotFound)
	ErrTeacherNotFound = fmt.Errorf("teacher not found: %w", ErrResourceNotFound)
)

// Scheduling errors
var (
	ErrClassNotFound = fmt.Errorf("class not found: %w", ErrResourceNotFound)
)

// CPR errors
var (
	ErrSubTopicNotFound  = fmt.Errorf("sub-topic not found: %w", ErrResourceNotFound)
	ErrInvalidStatus     = fmt.Errorf("status must be IN_PROGRESS or COMPLETED: %w", ErrValidationFailed)
	ErrInvalidCurriculum = fmt.Errorf("invalid curriculum: %w", ErrValidationFailed)
)

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error pointing at a single request field
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// NewBadRequestError creates an error for an unreadable part of the request
func NewBadRequestError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError is a sentinel with a client facing message. Details["field"] names the
// offending request key.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// ConflictDimension names the resource that is double-booked
type ConflictDimension string

const (
	ConflictRoom    ConflictDimension = "room"
	ConflictTeacher ConflictDimension = "teacher"
)

// ScheduleConflictError is returned when a class slot collides with an existing booking.
// It unwraps to ErrConflict.
type ScheduleConflictError struct {
	Dimension ConflictDimension
	Start     time.Time
	End       time.Time
	// ConflictingClassID is zero when the collision is with another slot of the same request.
	ConflictingClassID int64
}

// Error implements error interface
func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("%s is already booked for the slot starting %s",
		e.Dimension, e.Start.Format("Mon, 02 Jan 2006 15:04 MST"))
}

// Unwrap implements errors.Unwrap interface
func (e *ScheduleConflictError) Unwrap() error {
	return ErrConflict
}
