package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger is a middleware that logs each HTTP request as one structured entry.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := statusOf(c, err)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Msg("http_request")

		return err
	}
}

// statusOf resolves the status the error handler will send for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
