package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"accessibleos/internal/auth"
	"accessibleos/internal/service"
)

// UserHandler handles user sync and profile endpoints.
type UserHandler struct {
	users    service.UserService
	identity *identityResolver
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService, authStub bool) *UserHandler {
	return &UserHandler{
		users:    users,
		identity: &identityResolver{users: users, authStub: authStub},
	}
}

// SyncUserRequest optionally overrides profile fields during sync.
type SyncUserRequest struct {
	DisplayName       string `json:"displayName" validate:"omitempty,max=255"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url,max=1024"`
}

// SyncUser godoc
// @Summary Upsert the caller's user record from their identity
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body SyncUserRequest false "Profile overrides"
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/sync [post]
func (h *UserHandler) SyncUser(c echo.Context) error {
	id, err := auth.FromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req SyncUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.SyncUserInput{
		ExternalID:        id.ExternalID,
		Email:             id.Email,
		DisplayName:       id.Name,
		ProfilePictureURL: req.ProfilePictureURL,
	}
	if req.DisplayName != "" {
		input.DisplayName = req.DisplayName
	}

	user, err := h.users.SyncUser(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{Success: true, Data: user})
}

// UpdateProfile godoc
// @Summary Partially update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updates body object true "Fields to update (displayName, profilePictureUrl)"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := h.identity.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateUser(c.Request().Context(), user.ID, updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    updated,
		Message: "Profile updated successfully",
	})
}
