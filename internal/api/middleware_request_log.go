package api

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// RequestIDContextKey is where the requestid middleware stores the id.
const RequestIDContextKey = "request_id"

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDContextKey).(string); ok && id != "" {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// RequestLogger writes one access log line per request.
func RequestLogger(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(started).Round(time.Microsecond),
			"request_id", requestID(c),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
		return err
	}
}
