package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"accessibleos/internal/auth"
	"accessibleos/internal/errors"
	"accessibleos/internal/model"
	"accessibleos/internal/service"
)

// Response is the standard success envelope.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// respondError translates a service error into the standard error envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, echo.Map{
		"success": false,
		"error":   httpErr.Message,
		"code":    httpErr.Code,
	})
}

// identityResolver turns the request identity into an internal user row.
// Services only ever see the resolved owner id, never caller-supplied ids.
type identityResolver struct {
	users    service.UserService
	authStub bool
}

func (r *identityResolver) currentUser(c echo.Context) (*model.User, error) {
	id, err := auth.FromContext(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	if r.authStub {
		// Stub identities may not exist yet; sync creates the row (and seeds
		// demo data for demo identities) so queries receive a real user id.
		return r.users.SyncUser(c.Request().Context(), service.SyncUserInput{
			ExternalID:        id.ExternalID,
			Email:             id.Email,
			DisplayName:       id.Name,
			ProfilePictureURL: "",
		})
	}

	user, err := r.users.GetUserByExternalID(c.Request().Context(), id.ExternalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}
