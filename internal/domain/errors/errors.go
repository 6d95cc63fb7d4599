package errors

import (
	"net/http"

	"barhop/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
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

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Place provider errors
	ErrBarNotFound = NewBaseError(
		http.StatusNotFound,
		"BAR_NOT_FOUND",
		"No bar exists with that id",
		"",
	)

	ErrUpstreamFailed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_FAILED",
		"The places service returned an error",
		"",
	)

	// Geocoding errors
	ErrGeocodeFailed = NewBaseError(
		http.StatusBadGateway,
		"GEOCODE_FAILED",
		"Geocoding lookup failed, please try again",
		"",
	)

	ErrGeocodeNoResults = NewBaseError(
		http.StatusNotFound,
		"GEOCODE_NO_RESULTS",
		"No places matched the search, refine the query or use the device location",
		"",
	)

	// Favorites errors
	ErrFavoritesPersist = NewBaseError(
		http.StatusInternalServerError,
		"FAVORITES_PERSIST_FAILED",
		"Could not persist the favorites set",
		"",
	)
)
