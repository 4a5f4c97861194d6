package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"rsvp-backend/pkg/config"
	"rsvp-backend/pkg/logger"
)

// RateLimiter guards the public guest endpoints
func RateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return passThrough
	}

	return newLimiter(cfg.MaxRequests, cfg.WindowSeconds, "RATE_LIMIT_EXCEEDED", "Too many requests. Please try again later.")
}

// AuthRateLimiter returns a stricter rate limiting middleware for the admin password check
func AuthRateLimiter(cfg *config.RateLimitConfig) fiber.Handler {
	if !cfg.Enabled {
		return passThrough
	}

	return newLimiter(cfg.AuthMaxRequests, cfg.AuthWindowSeconds, "AUTH_RATE_LIMIT_EXCEEDED", "Too many authentication attempts. Please try again later.")
}

func newLimiter(max, windowSeconds int, code, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(windowSeconds) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn(logger.CategoryAPI, "rate_limited", "Rate limit reached", map[string]interface{}{
				"ip":   c.IP(),
				"path": c.Path(),
				"code": code,
			})
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": message,
				"error":   code,
			})
		},
	})
}

func passThrough(c *fiber.Ctx) error {
	return c.Next()
}
