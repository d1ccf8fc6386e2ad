package orders

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/orders/handlers"
)

type Handlers struct {
	OrderHandler *handlers.OrderHandler
}

// RegisterRoutes wires order endpoints onto router.
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	group := router.Group("/orders")
	group.Get("/", handlers.OrderHandler.List)
	group.Get("/:id", handlers.OrderHandler.Get)
	group.Put("/:id/status", handlers.OrderHandler.UpdateStatus)
}
