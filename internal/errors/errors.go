package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// Field returns the request field the error is about, if any
func (e *APIError) Field() string {
	switch v := e.Details.(type) {
	case ValidationError:
		return v.Field
	case ValidationErrors:
		if len(v.Errors) > 0 {
			return v.Errors[0].Field
		}
	}
	return ""
}

// ValidationError names the offending request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 413, 415
	ErrPayloadTooLarge      = New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
	ErrUnsupportedMediaType = New(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "Content-Type must be application/json")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// InvalidParameter creates a 400 error for a summary option the core rejected
func InvalidParameter(field, reason string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_PARAMETER", fmt.Sprintf("Invalid %s: %s", field, reason), ValidationError{
		Field:   field,
		Message: reason,
	})
}

// DatasetNotFound creates a 404 naming the dataset request field
func DatasetNotFound(dataset string) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATASET_NOT_FOUND", fmt.Sprintf("Dataset %q not found", dataset), ValidationError{
		Field:   "dataset",
		Message: fmt.Sprintf("no dataset named %q", dataset),
	})
}

// DateNotFound creates a 404 naming the date request field
func DateNotFound(date string) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATE_NOT_FOUND", fmt.Sprintf("Date %q not found", date), ValidationError{
		Field:   "date",
		Message: fmt.Sprintf("no data directory for %q", date),
	})
}

// ColumnNotFound creates a 404 naming the element request field
func ColumnNotFound(column string) *APIError {
	return NewWithDetails(http.StatusNotFound, "COLUMN_NOT_FOUND", fmt.Sprintf("Column %q not found", column), ValidationError{
		Field:   "element",
		Message: fmt.Sprintf("dataset has no column %q", column),
	})
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}
