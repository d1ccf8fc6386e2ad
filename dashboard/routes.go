package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/dashboard/handlers"
)

type Handlers struct {
	SummaryHandler *handlers.SummaryHandler
}

// RegisterRoutes wires dashboard endpoints.
func RegisterRoutes(router fiber.Router, handlers *Handlers) {
	router.Get("/summary", handlers.SummaryHandler.Get)
}
