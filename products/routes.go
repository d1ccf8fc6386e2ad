package products

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/products/handlers"
)

type Handlers struct {
	ProductHandler *handlers.ProductHandler
}

// RegisterRoutes wires product and category endpoints onto router. Auth is
// applied by the caller on the router group.
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	router.Get("/categories", handlers.ProductHandler.Categories)

	group := router.Group("/products")
	group.Get("/", handlers.ProductHandler.List)
	group.Get("/:id", handlers.ProductHandler.Get)
	group.Post("/", handlers.ProductHandler.Create)
	group.Put("/:id", handlers.ProductHandler.Update)
	group.Delete("/:id", handlers.ProductHandler.Delete)
}
