package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/internal/types"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingField       = errors.New("missing required field")
	ErrTokenGeneration    = errors.New("token generation failed")
)

const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingField       = "MISSING_REQUIRED_FIELD"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternalError      = "INTERNAL_ERROR"
)

// HandleServiceError maps login errors to HTTP responses.
func HandleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return c.Status(http.StatusUnauthorized).JSON(types.Fail(CodeInvalidCredentials, "Geçersiz email veya şifre", nil))
	case errors.Is(err, ErrMissingField):
		return c.Status(http.StatusBadRequest).JSON(types.Fail(CodeMissingField, err.Error(), nil))
	default:
		return c.Status(http.StatusInternalServerError).JSON(types.Fail(CodeInternalError, "An unexpected error occurred", err.Error()))
	}
}

// HandleInvalidRequestError handles malformed bodies with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(types.Fail(CodeInvalidRequest, message, message))
}
