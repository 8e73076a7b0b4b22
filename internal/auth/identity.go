package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "auth_identity"

// ErrNoIdentity is returned when a request carries no resolvable identity.
var ErrNoIdentity = errors.New("no authenticated identity")

// Identity is the external identity-provider subject attached to a request.
// The services never trust a caller-supplied user id; they derive the owner
// from this identity.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

// Stub returns middleware that accepts requests without real token
// verification. A bearer token with the demo prefix becomes the external id
// verbatim so callers get predictable identities; anything else maps to the
// shared demo user. Development and demo environments only.
func Stub() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			externalID := "demo-user"
			if strings.HasPrefix(token, "demo-") {
				externalID = token
			}
			c.Set(identityContextKey, Identity{
				ExternalID: externalID,
				Email:      "demo@accessibleos.com",
				Name:       "Demo User",
			})
			return next(c)
		}
	}
}

// FromContext resolves the request identity set by either the stub middleware
// or the JWT middleware.
func FromContext(c echo.Context) (Identity, error) {
	if id, ok := c.Get(identityContextKey).(Identity); ok {
		return id, nil
	}

	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Identity{}, ErrNoIdentity
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrNoIdentity
	}

	id := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		id.ExternalID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	if id.ExternalID == "" {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
