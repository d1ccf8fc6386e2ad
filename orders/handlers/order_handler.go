package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/internal/types"
	orderErrors "github.com/lMelkorl/b2bminiui/orders/errors"
	"github.com/lMelkorl/b2bminiui/orders/models"
	"github.com/lMelkorl/b2bminiui/orders/services"
	"github.com/lMelkorl/b2bminiui/orders/validation"
)

type OrderHandler struct {
	service services.OrderService
}

func NewOrderHandler(service services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// List returns orders matching the query string, newest first by default.
// Endpoint: GET /orders?search=&status=&dateStart=&dateEnd=&minAmount=&maxAmount=&sort=&order=&limit=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})

	params, err := validation.DecodeListQuery(values)
	if err != nil {
		return orderErrors.HandleValidationError(c, err.Error())
	}

	orders, err := h.service.List(c.UserContext(), params)
	if err != nil {
		return orderErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OK(orders))
}

// Get returns one order.
// Endpoint: GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return orderErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OK(order))
}

// UpdateStatus changes the fulfilment status.
// Endpoint: PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return orderErrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	order, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return orderErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(types.OKMessage(order, "Sipariş durumu güncellendi"))
}
