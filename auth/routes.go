package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/auth/login"
)

type Handlers struct {
	LoginHandler *login.Handler
}

// RegisterRoutes wires the public auth endpoints. limiter may be nil.
func RegisterRoutes(router fiber.Router, handlers *Handlers, limiter fiber.Handler) {
	if limiter != nil {
		router.Post("/login", limiter, handlers.LoginHandler.Handle)
		return
	}
	router.Post("/login", handlers.LoginHandler.Handle)
}
