package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"accessibleos/internal/errors"
	"accessibleos/internal/service"
)

// AccessibilityHandler handles accessibility-settings endpoints.
type AccessibilityHandler struct {
	settings service.AccessibilityService
	identity *identityResolver
}

// NewAccessibilityHandler creates a new accessibility handler.
func NewAccessibilityHandler(settings service.AccessibilityService, users service.UserService, authStub bool) *AccessibilityHandler {
	return &AccessibilityHandler{
		settings: settings,
		identity: &identityResolver{users: users, authStub: authStub},
	}
}

// GetSettings godoc
// @Summary Get the caller's accessibility settings
// @Tags accessibility
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /accessibility [get]
func (h *AccessibilityHandler) GetSettings(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	settings, err := h.settings.GetSettings(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	if settings == nil {
		return respondError(c, errors.ErrSettingsNotFound)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: settings})
}

// UpdateSettings godoc
// @Summary Partially update the caller's accessibility settings
// @Tags accessibility
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updates body object true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /accessibility [put]
func (h *AccessibilityHandler) UpdateSettings(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.settings.UpdateSettings(c.Request().Context(), user.ID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    settings,
		Message: "Settings updated successfully",
	})
}
