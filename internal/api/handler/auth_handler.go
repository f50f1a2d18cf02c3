package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/ports"
)

// refreshCookieName is the cookie carrying the refresh token.
const refreshCookieName = "jwt"

// refreshCookieMaxAge matches the refresh token's 1-day lifetime so the
// cookie and the token it carries expire together.
const refreshCookieMaxAge = 24 * time.Hour

// AuthHandler exposes register, login, and logout.
type AuthHandler struct {
	sessions      ports.SessionService
	secureCookies bool
}

// NewAuthHandler creates an AuthHandler. secureCookies should be true in
// production so the refresh cookie is only sent over TLS.
func NewAuthHandler(sessions ports.SessionService, secureCookies bool) *AuthHandler {
	return &AuthHandler{sessions: sessions, secureCookies: secureCookies}
}

// Register creates a new account with the baseline role grant.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  registeredUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.User,
		Password: req.Pwd,
		Email:    req.Email,
		Age:      req.Age,
		Job:      req.Job,
		Country:  req.Country,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registeredUserResponse{
		ID:       user.ID,
		Username: user.Username,
		Roles:    user.Roles.Values(),
	})
}

// Login verifies credentials and issues the token pair. The refresh token
// travels only in an HttpOnly cookie; the body carries the role set and the
// access token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	result, err := h.sessions.Login(c.Request().Context(), req.User, req.Pwd)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	return c.JSON(http.StatusOK, loginResponse{
		Roles:       result.Roles,
		AccessToken: result.AccessToken,
	})
}

// Logout clears the stored refresh token and expires the cookie. Always
// succeeds; repeating it is harmless.
//
// @Summary      Log out
// @Tags         auth
// @Success      204  "session cleared"
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(c.Request().Context(), cookie.Value); err != nil {
			// The cookie is cleared regardless; a storage hiccup here must
			// not keep the client logged in.
			c.Logger().Error(err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	return c.NoContent(http.StatusNoContent)
}
