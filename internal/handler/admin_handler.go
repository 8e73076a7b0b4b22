package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"accessibleos/internal/auth"
	"accessibleos/internal/errors"
	"accessibleos/internal/service"
)

// AdminHandler handles guarded administrative endpoints.
type AdminHandler struct {
	users service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// DemoResetRequest optionally targets a different demo identity.
type DemoResetRequest struct {
	ExternalID string `json:"externalId"`
}

// DemoReset godoc
// @Summary Reset demo data for a user
// @Description Deletes all rows owned by the user and the user itself. Only
// @Description available when demo resets are enabled by configuration.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/demo-reset [post]
func (h *AdminHandler) DemoReset(c echo.Context) error {
	id, err := auth.FromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req DemoResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	externalID := req.ExternalID
	if externalID == "" {
		externalID = id.ExternalID
	}

	user, err := h.users.GetUserByExternalID(c.Request().Context(), externalID)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, errors.ErrUserNotFound)
	}

	if err := h.users.ResetDemoForUser(c.Request().Context(), user.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Message: "Demo data reset"})
}
