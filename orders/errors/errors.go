package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lMelkorl/b2bminiui/internal/types"
)

// Order service specific errors
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Error codes
const (
	CodeOrderNotFound    = "ORDER_NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeDatabaseError    = "DATABASE_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// OrderError carries an error code and its cause.
type OrderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *OrderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OrderError) Unwrap() error {
	return e.Cause
}

// Validation marks a request-shape problem so it maps to 400.
func Validation(cause error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, cause)
}

// Database wraps a repository failure of operation op.
func Database(op string, cause error) error {
	return &OrderError{Code: CodeDatabaseError, Message: op, Cause: fmt.Errorf("%w: %w", ErrDatabaseOperation, cause)}
}

// HandleServiceError maps service errors to HTTP responses.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrOrderNotFound):
		return c.Status(http.StatusNotFound).JSON(types.Fail(CodeOrderNotFound, "Sipariş bulunamadı", nil))
	case errors.Is(err, ErrValidationFailed):
		return c.Status(http.StatusBadRequest).JSON(types.Fail(CodeValidationFailed, "Geçersiz sorgu", err.Error()))
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(types.Fail(CodeDatabaseError, "Database operation failed", err.Error()))
	default:
		return c.Status(http.StatusInternalServerError).JSON(types.Fail(CodeInternalError, "An unexpected error occurred", err.Error()))
	}
}

// HandleValidationError handles validation errors with 400 Bad Request
func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(types.Fail(CodeValidationFailed, message, message))
}

// HandleInvalidRequestError handles malformed bodies with 400 Bad Request
func HandleInvalidRequestError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(types.Fail(CodeInvalidRequest, message, message))
}
