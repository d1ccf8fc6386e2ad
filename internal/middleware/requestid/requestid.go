package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

const maxIDLength = 64

// New echoes a well-formed incoming X-Request-ID or mints a uuid, and puts the
// id on the request's user context for log.*WithContext.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if !valid(requestID) {
			requestID = uuid.Must(uuid.NewV4()).String()
		}

		c.Set(HeaderRequestID, requestID)
		c.SetUserContext(log.WithRequestID(c.UserContext(), requestID))
		return c.Next()
	}
}

// valid accepts ids made of letters, digits, '-', '_' and '.' only, so client
// input never lands raw in log lines.
func valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
