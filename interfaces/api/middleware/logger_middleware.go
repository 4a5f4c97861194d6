package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rsvp-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// LoggerMiddleware tags each request with an id and writes one api log line per request.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := logger.LogEntry{
			Level:     logger.LevelInfo,
			Category:  logger.CategoryAPI,
			Action:    "request",
			Message:   c.Method() + " " + c.Path(),
			RequestID: requestID,
			Duration:  time.Since(start).String(),
			Data: map[string]interface{}{
				"status": status,
				"ip":     c.IP(),
			},
		}
		if status >= fiber.StatusInternalServerError {
			entry.Level = logger.LevelError
		} else if status >= fiber.StatusBadRequest {
			entry.Level = logger.LevelWarn
		}
		logger.Default().Log(entry)

		return err
	}
}
