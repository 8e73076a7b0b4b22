package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "task not found", err: ErrTaskNotFound, wantStatus: http.StatusNotFound, wantCode: "TASK_NOT_FOUND"},
		{name: "category not found", err: ErrCategoryNotFound, wantStatus: http.StatusNotFound, wantCode: "CATEGORY_NOT_FOUND"},
		{name: "user not found", err: ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND"},
		{name: "settings not found", err: ErrSettingsNotFound, wantStatus: http.StatusNotFound, wantCode: "SETTINGS_NOT_FOUND"},
		{name: "no fields to update", err: ErrNoFieldsToUpdate, wantStatus: http.StatusBadRequest, wantCode: "NO_FIELDS_TO_UPDATE"},
		{name: "invalid sort field", err: ErrInvalidSortField, wantStatus: http.StatusBadRequest, wantCode: "INVALID_SORT_FIELD"},
		{name: "invalid parent task", err: ErrInvalidParentTask, wantStatus: http.StatusBadRequest, wantCode: "INVALID_PARENT_TASK"},
		{name: "invalid field value", err: ErrInvalidFieldValue, wantStatus: http.StatusBadRequest, wantCode: "INVALID_FIELD_VALUE"},
		{name: "demo reset disabled", err: ErrDemoResetDisabled, wantStatus: http.StatusForbidden, wantCode: "DEMO_RESET_DISABLED"},
		{name: "wrapped sentinel", err: fmt.Errorf("list tasks: %w", ErrInvalidSortField), wantStatus: http.StatusBadRequest, wantCode: "INVALID_SORT_FIELD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestToErrorResponse(t *testing.T) {
	httpErr := NewHTTPError(http.StatusNotFound, "task not found", "TASK_NOT_FOUND")
	resp := httpErr.ToErrorResponse()

	assert.Equal(t, "task not found", resp.Error)
	assert.Equal(t, "TASK_NOT_FOUND", resp.Code)
}
