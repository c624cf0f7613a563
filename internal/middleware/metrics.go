package middleware

import (
	"strconv"
	"time"

	"sirwa/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latencies labelled by route pattern.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := resolveError(c, c.Next())
		status := c.Response().StatusCode()

		path := c.Route().Path
		if status == fiber.StatusNotFound {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Method(), path, strconv.Itoa(status), time.Since(start))
		return err
	}
}
