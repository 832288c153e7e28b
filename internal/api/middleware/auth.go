package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/lesson-api/internal/core/domain"
	"github.com/learnhub/lesson-api/internal/core/ports"
)

const identityKey = "identity"

var (
	errMissingHeader = domain.Unauthenticated("missing authorization header")
	errBadScheme     = domain.Unauthenticated("invalid authorization header")
)

// Authenticate extracts the bearer token from the request and verifies it.
func Authenticate(c echo.Context, verifier ports.TokenVerifier) (domain.Identity, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return domain.Identity{}, errMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return domain.Identity{}, errBadScheme
	}

	return verifier.Verify(strings.TrimSpace(parts[1]))
}

// Auth validates the bearer token and stores the identity in the context.
// Handlers registered through Pipeline receive the identity as an argument
// instead.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Authenticate(c, verifier)
			if err != nil {
				return err
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth or Pipeline.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
