package middleware

import "github.com/gofiber/fiber/v2"

// resolveError runs the app error handler for err so the response status is
// final before it is logged or measured. It returns nil once handled.
func resolveError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
		_ = c.SendStatus(fiber.StatusInternalServerError)
	}
	return nil
}
