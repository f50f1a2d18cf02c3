package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketbay/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name, image and priceCents are required")
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:       req.Name,
		Image:      req.Image,
		PriceCents: req.PriceCents,
		Rating:     req.Rating,
		CreatedBy:  username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// List handles GET /products — the whole catalog, served through the cache.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Success      204  "catalog is empty"
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, products)
}

// Search handles GET /products/search?name= — case-insensitive partial match.
//
// @Summary      Search products by name
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  true  "Name fragment"
// @Success      200   {array}   domain.Product
// @Success      204   "no matches"
// @Failure      400   {object}  map[string]string
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	products, err := h.service.Search(c.Request().Context(), name)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /products and PUT /products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
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

	product, err := h.service.Update(c.Request().Context(), ports.UpdateProductInput{
		ID:         id,
		Name:       req.Name,
		Image:      req.Image,
		PriceCents: req.PriceCents,
		Rating:     req.Rating,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /products with the id in the body.
//
// @Summary      Delete a product
// @Tags         products
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  deleteByIDRequest  true  "Product id"
// @Success      204   "deleted"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
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
