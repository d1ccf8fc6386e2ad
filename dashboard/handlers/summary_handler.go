package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/dashboard/services"
	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/types"
)

type SummaryHandler struct {
	service *services.SummaryService
}

func NewSummaryHandler(service *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get returns the dashboard summary.
// Endpoint: GET /summary
func (h *SummaryHandler) Get(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		log.ErrorWithContext(c.UserContext(), "[dashboard] summary failed: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(types.Fail("DATABASE_ERROR", "Database operation failed", err.Error()))
	}
	return c.Status(http.StatusOK).JSON(types.OK(summary))
}
