// Package ratelimit wraps fiber's limiter with per-endpoint defaults.
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/types"
)

// EndpointType represents the rate-limited endpoint group.
type EndpointType int

const (
	EndpointLogin EndpointType = iota
	EndpointAPI
)

func (e EndpointType) String() string {
	switch e {
	case EndpointLogin:
		return "login"
	case EndpointAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Config holds the configuration for rate limiting middleware
type Config struct {
	EndpointType EndpointType
	Max          int
	Window       time.Duration

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// KeyGenerator defaults to client IP plus path.
	KeyGenerator func(c *fiber.Ctx) string

	// OnLimit is called whenever a request is rejected.
	OnLimit func(endpoint string)
}

func configDefault(config Config) Config {
	if config.Max <= 0 {
		switch config.EndpointType {
		case EndpointLogin:
			config.Max = 5
		default:
			config.Max = 300
		}
	}
	if config.Window <= 0 {
		switch config.EndpointType {
		case EndpointLogin:
			config.Window = 15 * time.Minute
		default:
			config.Window = time.Minute
		}
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}
	return config
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)
	endpoint := cfg.EndpointType.String()

	return limiter.New(limiter.Config{
		Max:          cfg.Max,
		Expiration:   cfg.Window,
		KeyGenerator: cfg.KeyGenerator,
		Next:         cfg.Next,
		LimitReached: func(c *fiber.Ctx) error {
			log.WarnWithContext(c.UserContext(), "[RateLimit] Rate limit exceeded for %s from IP: %s", endpoint, c.IP())
			if cfg.OnLimit != nil {
				cfg.OnLimit(endpoint)
			}
			c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(cfg.Window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(types.Fail(
				"RATE_LIMIT_EXCEEDED",
				fmt.Sprintf("Too many %s attempts. Please try again later.", endpoint),
				fiber.Map{"retryAfter": int(cfg.Window.Seconds())},
			))
		},
	})
}
