package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	appmetrics "github.com/lMelkorl/b2bminiui/internal/metrics"
)

// New records request count and latency per matched route.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		appmetrics.RequestTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		appmetrics.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
