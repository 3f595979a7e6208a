package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mile-mijatovic/address-book/internal/metrics"
)

// Metrics observes every request with its route pattern, keeping the
// label cardinality bounded.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.ObserveHTTPRequest(c.Method(), path, status, time.Since(start))

		return err
	}
}
