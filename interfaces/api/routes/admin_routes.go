package routes

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/pkg/config"
)

// SetupAdminRoutes covers the admin session endpoints and the admin-only
// activity and log viewers.
func SetupAdminRoutes(api fiber.Router, h *handlers.Handlers, authService services.AuthService, rateLimit *config.RateLimitConfig) {
	admin := api.Group("/admin")

	authLimited := middleware.AuthRateLimiter(rateLimit)
	optional := middleware.OptionalAdmin(authService)
	admin.Post("/verify", authLimited, h.Auth.Verify)
	admin.Post("/logout", authLimited, optional, h.Auth.Logout)
	admin.Get("/session", authLimited, optional, h.Auth.Session)

	protected := middleware.AdminOnly(authService)
	admin.Get("/activity", protected, h.ActivityLog.GetActivityLogs)
	admin.Get("/logs", protected, h.Log.GetLogs)
	admin.Get("/logs/files", protected, h.Log.GetLogFiles)
	admin.Get("/logs/stats", protected, h.Log.GetLogStats)
}
