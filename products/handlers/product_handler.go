package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/internal/types"
	productErrors "github.com/lMelkorl/b2bminiui/products/errors"
	"github.com/lMelkorl/b2bminiui/products/models"
	"github.com/lMelkorl/b2bminiui/products/services"
	"github.com/lMelkorl/b2bminiui/products/validation"
)

type ProductHandler struct {
	service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns products matching the query string.
// Endpoint: GET /products?search=&category=&minPrice=&maxPrice=&minWeight=&maxWeight=&sort=&order=&limit=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	params, err := validation.DecodeListQuery(queryValues(c))
	if err != nil {
		return productErrors.HandleValidationError(c, err.Error())
	}

	products, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OK(products))
}

// Categories returns the category filter choices.
// Endpoint: GET /categories
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.UserContext())
	if err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OK(categories))
}

// Get returns one product.
// Endpoint: GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OK(product))
}

// Create adds a product.
// Endpoint: POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return productErrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	product, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(types.OKMessage(product, "Ürün başarıyla eklendi"))
}

// Update merges the body into a product.
// Endpoint: PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return productErrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OKMessage(product, "Ürün başarıyla güncellendi"))
}

// Delete removes a product.
// Endpoint: DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return productErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OKMessage(nil, "Ürün başarıyla silindi"))
}

// queryValues copies the request query string. Fiber's buffers are reused
// after the handler returns, so values must not alias them.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
