package login

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	authErrors "github.com/lMelkorl/b2bminiui/auth/errors"
	"github.com/lMelkorl/b2bminiui/auth/models"
	"github.com/lMelkorl/b2bminiui/internal/types"
)

type Handler struct {
	svc *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{svc: s}
}

// Handle signs a user in. The token is returned in the body and set as the
// access_token cookie.
// Endpoint: POST /login
func (h *Handler) Handle(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return authErrors.HandleInvalidRequestError(c, "Invalid request body")
	}

	resp, err := h.svc.Login(c.UserContext(), &req)
	if err != nil {
		return authErrors.HandleServiceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     types.AccessTokenName,
		Value:    resp.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.svc.config.TokenTTL),
	})
	return c.Status(http.StatusOK).JSON(resp)
}
