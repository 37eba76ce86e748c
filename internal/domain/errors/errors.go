// Package errors defines the application error model for the dispatch engine.
package errors

import (
	"net/http"

	"dispatch/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Reasons() []string // Per-candidate rejection reasons (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	reasons   []string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Reasons returns per-candidate rejection reasons for observability
func (e *BaseError) Reasons() []string {
	return e.reasons
}

// WithDetails returns a copy of the error with detailed information attached
func (e *BaseError) WithDetails(details string) *BaseError {
	clone := *e

	clone.details = details

	return &clone
}

// WithReasons returns a copy of the error carrying rejection reasons so
// callers can see why every candidate was turned down
func (e *BaseError) WithReasons(reasons []string) *BaseError {
	clone := *e

	clone.reasons = reasons

	return &clone
}

// Predefined error types
var (
	// Validation errors; non-retryable, rejected before any computation
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"request failed validation",
		"",
	)

	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"coordinate outside valid bounds",
		"",
	)

	ErrUnknownVehicleType = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_VEHICLE_TYPE",
		"unknown vehicle type",
		"",
	)

	// Dispatch errors; retryable by the caller with a widened radius or backoff
	ErrNoCandidates = NewBaseError(
		http.StatusNotFound,
		"NO_CANDIDATES",
		"no partners found within search radius",
		"",
	)

	ErrNoEligiblePartner = NewBaseError(
		http.StatusUnprocessableEntity,
		"NO_ELIGIBLE_PARTNER",
		"no candidate passed the eligibility constraints",
		"",
	)

	// ErrCapacityExhausted is surfaced when every ranked candidate lost the
	// capacity race within the bounded retry budget
	ErrCapacityExhausted = NewBaseError(
		http.StatusConflict,
		"CAPACITY_EXHAUSTED",
		"all ranked candidates reached capacity during commit",
		"",
	)

	// Route optimization errors; retryable
	ErrOptimizationFailed = NewBaseError(
		http.StatusInternalServerError,
		"OPTIMIZATION_FAILED",
		"all route solvers failed or timed out",
		"",
	)

	ErrPartnerNotFound = NewBaseError(
		http.StatusNotFound,
		"PARTNER_NOT_FOUND",
		"partner not found",
		"",
	)
)

// NewDatabaseExecuteError creates a database-related error preserving the cause
func NewDatabaseExecuteError(err error, details string) AppError {
	base := NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_ERROR",
		"database operation failed",
		details,
	)
	if err != nil {
		base.details = details + ": " + err.Error()
	}

	return base
}
