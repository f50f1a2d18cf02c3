package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Add handles POST /cart — the idempotent add-or-increment submission.
// Duplicate concurrent posts for the same product collapse into one line.
//
// @Summary      Add a product to the cart or increment its quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Cart item"
// @Success      201   {object}  domain.CartLine
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name, priceCents and quantity are required")
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	line, err := h.service.AddOrIncrement(c.Request().Context(), ports.AddCartItemInput{
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Quantity:   req.Quantity,
		Image:      req.Image,
		OneDay:     toTierInput(req.OneDay),
		ThreeDay:   toTierInput(req.ThreeDay),
		SevenDay:   toTierInput(req.SevenDay),
		CreatedBy:  username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, line)
}

// List handles GET /cart — the caller's own cart lines.
//
// @Summary      List the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CartLine
// @Success      204  "cart is empty"
// @Router       /cart [get]
func (h *CartHandler) List(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	lines, err := h.service.List(c.Request().Context(), username)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, lines)
}

// Get handles GET /cart/:id.
//
// @Summary      Get a single cart line
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart line id"
// @Success      200  {object}  domain.CartLine
// @Failure      404  {object}  map[string]string
// @Router       /cart/{id} [get]
func (h *CartHandler) Get(c echo.Context) error {
	line, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, line)
}

// Update handles PUT /cart and PUT /cart/:id — partial correction of an
// existing line. The id may arrive in the body, the query, or the path.
//
// @Summary      Update a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateCartItemRequest  true  "Fields to update"
// @Success      200   {object}  domain.CartLine
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart [put]
func (h *CartHandler) Update(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id := req.ID
	if id == "" {
		id = c.QueryParam("id")
	}
	if id == "" {
		id = c.Param("id")
	}
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	line, err := h.service.Update(c.Request().Context(), ports.UpdateCartItemInput{
		ID:       id,
		Date:     req.Date,
		Quantity: req.Quantity,
		OneDay:   req.OneDay,
		ThreeDay: req.ThreeDay,
		SevenDay: req.SevenDay,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, line)
}

// Delete handles DELETE /cart with the id in the body.
//
// @Summary      Delete a cart line
// @Tags         cart
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deleteByIDRequest  true  "Cart line id"
// @Success      204   "deleted"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /cart [delete]
func (h *CartHandler) Delete(c echo.Context) error {
	var req deleteByIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toTierInput(t *deliveryTierRequest) *ports.TierInput {
	if t == nil {
		return nil
	}
	return &ports.TierInput{PriceCents: t.PriceCents}
}
