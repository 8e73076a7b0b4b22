package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or is not owned by the caller.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCategoryNotFound is returned when a category does not exist or is not owned by the caller.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrSettingsNotFound is returned when accessibility settings are not found.
	ErrSettingsNotFound = errors.New("settings not found")
	// ErrNoFieldsToUpdate is returned when an update payload contains no recognized fields.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
	// ErrInvalidSortField is returned when a list request carries an unknown sort key.
	ErrInvalidSortField = errors.New("invalid sort field")
	// ErrInvalidParentTask is returned when a task is set as its own parent.
	ErrInvalidParentTask = errors.New("task cannot be its own parent")
	// ErrInvalidFieldValue is returned when an update value cannot be coerced
	// to its column type.
	ErrInvalidFieldValue = errors.New("invalid field value")
	// ErrDemoResetDisabled is returned when demo reset is attempted while disabled.
	ErrDemoResetDisabled = errors.New("demo reset is disabled in this environment")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Store errors fall through
// to a generic 500 so internal error text never reaches clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrSettingsNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SETTINGS_NOT_FOUND")
	case errors.Is(err, ErrNoFieldsToUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FIELDS_TO_UPDATE")
	case errors.Is(err, ErrInvalidSortField):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SORT_FIELD")
	case errors.Is(err, ErrInvalidParentTask):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PARENT_TASK")
	case errors.Is(err, ErrInvalidFieldValue):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FIELD_VALUE")
	case errors.Is(err, ErrDemoResetDisabled):
		return NewHTTPError(http.StatusForbidden, err.Error(), "DEMO_RESET_DISABLED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
