package routes

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/pkg/config"
)

func SetupGuestRoutes(api fiber.Router, h *handlers.Handlers, authService services.AuthService, rateLimit *config.RateLimitConfig) {
	guests := api.Group("/guests")

	// Public, rate limited
	limited := middleware.RateLimiter(rateLimit)
	guests.Get("/search", limited, h.Guest.SearchGuests)
	guests.Post("/rsvp", limited, h.Guest.SubmitRsvp)
	guests.Post("/rsvp/family", limited, h.Guest.SubmitFamilyRsvp)

	// Admin. Static paths are registered before /:id.
	admin := middleware.AdminOnly(authService)
	guests.Get("/", admin, h.Roster.ListGuests)
	guests.Get("/stats", admin, h.Roster.GetStats)
	guests.Post("/", admin, h.Roster.CreateGuest)
	guests.Post("/bulk", admin, h.Roster.BulkCreateGuests)
	guests.Post("/import", admin, h.Roster.ImportGuests)
	guests.Patch("/status", admin, h.Roster.UpdateWaitlist)
	guests.Get("/:id", admin, h.Roster.GetGuest)
	guests.Get("/:id/family", admin, h.Roster.GetFamily)
	guests.Patch("/:id", admin, h.Roster.UpdateGuest)
	guests.Delete("/:id", admin, h.Roster.DeleteGuest)
}
