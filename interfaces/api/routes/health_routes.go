package routes

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/pkg/config"
)

func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	app.Get("/health", h.Health.Health)
	app.Get("/health/detailed", h.Health.DetailedHealth)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to " + cfg.App.Name,
			"version": "1.0.0",
			"api":     "/api/v1",
			"health":  "/health",
		})
	})
}
