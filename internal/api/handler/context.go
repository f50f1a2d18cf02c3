package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty username proves the
// middleware ran.
func ctxIdentity(c echo.Context) (username string, roles []int, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	roles, _ = c.Get("roles").([]int)
	return username, roles, nil
}
