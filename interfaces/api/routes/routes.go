package routes

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/pkg/config"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, authService services.AuthService, cfg *config.Config) {
	SetupHealthRoutes(app, h, cfg)

	api := app.Group("/api/v1")

	SetupGuestRoutes(api, h, authService, &cfg.RateLimit)
	SetupStoryRoutes(api, h, authService)
	SetupAdminRoutes(api, h, authService, &cfg.RateLimit)
}
