package authjwt

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
	"github.com/lMelkorl/b2bminiui/internal/types"
	"github.com/lMelkorl/b2bminiui/internal/utils"
)

// Config defines the config for the JWT middleware.
type Config struct {
	// The EC public key (PEM) for validating ES256 tokens.
	PublicKey string
	// The context key to store the UserContext.
	UserCtxName string
	// Disabled lets every request through with an anonymous admin context.
	Disabled bool
}

// New creates a new middleware handler. It panics when the key cannot be
// parsed, which only happens at startup.
func New(cfg Config) fiber.Handler {
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}

	if cfg.Disabled {
		return func(c *fiber.Ctx) error {
			c.Locals(cfg.UserCtxName, types.UserContext{Name: "anonymous", Role: types.AdminRole})
			return c.Next()
		}
	}

	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		panic(fmt.Sprintf("failed to parse EC public key: %v", err))
	}

	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return unauthorized(c, "Missing or invalid JWT", nil)
		}

		claims, err := utils.ValidateTokenWithKey(ecPublicKey, tokenString)
		if err != nil {
			log.WarnWithContext(c.UserContext(), "[authjwt] rejected token from %s: %v", c.IP(), err)
			return unauthorized(c, "Invalid token", err.Error())
		}

		c.Locals(cfg.UserCtxName, claims.Claim)
		return c.Next()
	}
}

// extractToken prefers the Authorization header and falls back to the
// access_token cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get(types.HeaderAuthorization)
	if strings.HasPrefix(authHeader, types.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, types.BearerPrefix))
	}
	return c.Cookies(types.AccessTokenName)
}

func unauthorized(c *fiber.Ctx, message string, details interface{}) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.Fail("UNAUTHORIZED", message, details))
}

// User returns the authenticated user stored by the middleware.
func User(c *fiber.Ctx) (types.UserContext, bool) {
	u, ok := c.Locals(types.UserCtxName).(types.UserContext)
	return u, ok
}
