package handlers

import (
	"errors"

	"sirwa/internal/repositories"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxDetailLength bounds the error text returned to clients.
const maxDetailLength = 200

// ErrorHandler maps errors returned by handlers to HTTP responses. It is the
// only place where status codes for failures are chosen.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			validationErr *validation.Error
			storeErr      *repositories.StoreError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": validationErr.Fields,
			})
		case errors.As(err, &storeErr):
			// Logged at error level by the instrumented repository.
			log.Debug("Document store request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": truncate(storeErr.Error(), maxDetailLength),
			})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"detail": fiberErr.Message,
			})
		default:
			log.Error("Unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": truncate(err.Error(), maxDetailLength),
			})
		}
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
