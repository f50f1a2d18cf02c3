package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /orders — stores the whole order snapshot at once.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order snapshot"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "product and shippingAddress are required")
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		Total:           req.Total,
		Date:            req.Date,
		Items:           toOrderItems(req.Product),
		ShippingAddress: toShippingAddress(req.ShippingAddress),
		CreatedBy:       username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, order)
}

// List handles GET /orders. By default only the caller's orders are
// returned; ?all=1 widens to every user (admin dashboard) and
// ?productName= narrows orders to matching line items.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        all          query    string  false  "Set to 1 for all users' orders"
// @Param        productName  query    string  false  "Filter by product name"
// @Success      200  {array}  domain.Order
// @Success      204  "no orders"
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.List(c.Request().Context(), ports.ListOrdersInput{
		Owner:       username,
		All:         c.QueryParam("all") == "1",
		ProductName: c.QueryParam("productName"),
	})
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Update handles PUT /orders and PUT /orders/:id — wholesale replacement of
// the item list and/or shipping address.
//
// @Summary      Update an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateOrderRequest  true  "Replacement sub-documents"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders [put]
func (h *OrderHandler) Update(c echo.Context) error {
	var req updateOrderRequest
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

	in := ports.UpdateOrderInput{ID: id}
	if req.Product != nil {
		in.Items = toOrderItems(req.Product)
	}
	if req.ShippingAddress != nil {
		addr := toShippingAddress(req.ShippingAddress)
		in.ShippingAddress = &addr
	}

	order, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /orders with the id in the body.
//
// @Summary      Delete an order
// @Tags         orders
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deleteByIDRequest  true  "Order id"
// @Success      204   "deleted"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /orders [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
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

func toOrderItems(items []orderItemRequest) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		out[i] = domain.OrderItem{
			ProductID:    item.ProductID,
			Image:        item.Image,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
			Total:        item.Total,
			DeliveryDate: item.DeliveryDate,
		}
	}
	return out
}

func toShippingAddress(addr *shippingAddressRequest) domain.ShippingAddress {
	if addr == nil {
		return domain.ShippingAddress{}
	}
	return domain.ShippingAddress{
		FullName: addr.FullName,
		Country:  addr.Country,
		City:     addr.City,
		SubCity:  addr.SubCity,
		HouseNo:  addr.HouseNo,
		Phone:    addr.Phone,
	}
}
