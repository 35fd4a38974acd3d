// Package errors provides custom error types for the Bompilot API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Project errors.
var (
	ErrProjectNotFound = &AppError{Code: "PROJECT_NOT_FOUND", Message: "Project not found", StatusCode: http.StatusNotFound}
)

// Parts plan errors.
var (
	ErrCategoryNotFound   = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrSuggestionNotFound = &AppError{Code: "SUGGESTION_NOT_FOUND", Message: "Suggestion not found", StatusCode: http.StatusNotFound}
	ErrItemNotFound       = &AppError{Code: "ITEM_NOT_FOUND", Message: "Checklist item not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransition  = &AppError{Code: "INVALID_TRANSITION", Message: "Suggestion status transition not allowed", StatusCode: http.StatusBadRequest}

	// ErrPersistenceFailed signals that a document write did not happen.
	// Callers holding an optimistic local mutation must re-read server
	// state instead of assuming the write succeeded.
	ErrPersistenceFailed = &AppError{Code: "PERSISTENCE_FAILED", Message: "Failed to save changes", StatusCode: http.StatusInternalServerError}

	// ErrUpstreamDegraded is internal-only: the planner and discovery
	// pipeline absorb it via fallbacks and it is never returned to a client
	// as a hard failure.
	ErrUpstreamDegraded = &AppError{Code: "UPSTREAM_DEGRADED", Message: "Upstream data source unavailable", StatusCode: http.StatusServiceUnavailable}
)
