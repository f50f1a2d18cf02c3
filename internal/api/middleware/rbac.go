package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/domain"
)

// RequireRoles enforces role-based access control on top of Auth. Holding
// any one of the required role codes suffices.
func RequireRoles(required ...int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			held, _ := c.Get("roles").([]int)
			if !domain.Grants(held, required...) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
