package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/ports"
)

// RefreshHandler exposes the access-token refresh endpoint and the advisory
// session-status query.
type RefreshHandler struct {
	sessions ports.SessionService
}

func NewRefreshHandler(sessions ports.SessionService) *RefreshHandler {
	return &RefreshHandler{sessions: sessions}
}

// Refresh exchanges the refresh-token cookie for a new access token carrying
// the user's current role set. A missing cookie is 401; a cookie that is not
// the stored token for any user is 403.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /refresh [get]
func (h *RefreshHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh cookie")
	}

	result, err := h.sessions.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Roles:       result.Roles,
		AccessToken: result.AccessToken,
	})
}

// Status reports whether the refresh cookie belongs to an admin or editor.
// Advisory only: it always answers 200, collapsing every failure to the
// anonymous shape.
//
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  ports.SessionStatus
// @Router       /refresh/status [get]
func (h *RefreshHandler) Status(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(refreshCookieName); err == nil {
		token = cookie.Value
	}
	return c.JSON(http.StatusOK, h.sessions.Status(c.Request().Context(), token))
}
