package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/ports"
)

// AccessTokenVerifier is the slice of the token service the gate needs.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*ports.AccessClaims, error)
}

// Auth is the authorization gate applied to protected routes. It accepts
// either "Bearer <token>" or a bare token in the Authorization header,
// rejects absent credentials with 401 and failed verification with 403, and
// injects the decoded identity and role set into the request context for
// downstream handlers and role checks.
func Auth(verifier AccessTokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := header
			if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			claims, err := verifier.VerifyAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set("username", claims.Username)
			c.Set("roles", claims.Roles)

			return next(c)
		}
	}
}
