package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// UserHandler handles user administration and the public availability check.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// safeUserResponse is a user record with secrets stripped: the refresh token
// is omitted entirely and the password hash is masked.
type safeUserResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email,omitempty"`
	Age      string         `json:"age,omitempty"`
	Job      string         `json:"job,omitempty"`
	Country  string         `json:"country,omitempty"`
	Password string         `json:"password"`
	Roles    domain.RoleSet `json:"roles"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Editor User"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  safeUserResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	safe := make([]safeUserResponse, len(users))
	for i, u := range users {
		safe[i] = toSafeUser(u)
	}
	return c.JSON(http.StatusOK, safe)
}

// Exists handles GET /users/exists?user= — the case-insensitive username
// availability check. Public by design.
//
// @Summary      Check whether a username is taken
// @Tags         users
// @Produce      json
// @Param        user  query     string  true  "Username to check"
// @Success      200   {object}  existsResponse
// @Failure      400   {object}  map[string]string
// @Router       /users/exists [get]
func (h *UserHandler) Exists(c echo.Context) error {
	username := c.QueryParam("user")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user query required")
	}

	exists, err := h.service.Exists(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, existsResponse{Exists: exists})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "deleted"
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user id required")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRole handles PUT /users/:id/role. Requires the Admin or Editor role;
// routing applies the role gate before this handler runs.
//
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateRoleRequest  true  "Role name: Admin, Editor, or User"
// @Success      200   {object}  safeUserResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/role [put]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSafeUser(*updated))
}

func toSafeUser(u domain.User) safeUserResponse {
	masked := ""
	if u.PasswordHash != "" {
		masked = "********"
	}
	return safeUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Age:      u.Age,
		Job:      u.Job,
		Country:  u.Country,
		Password: masked,
		Roles:    u.Roles,
	}
}
