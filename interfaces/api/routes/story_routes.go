package routes

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/handlers"
	"rsvp-backend/interfaces/api/middleware"
)

func SetupStoryRoutes(api fiber.Router, h *handlers.Handlers, authService services.AuthService) {
	stories := api.Group("/stories")

	stories.Get("/", h.Story.ListStories)

	admin := middleware.AdminOnly(authService)
	stories.Post("/", admin, h.Story.CreateStory)
	stories.Post("/upload", admin, h.Story.UploadStory)
	stories.Patch("/:id", admin, h.Story.UpdateStory)
	stories.Delete("/:id", admin, h.Story.DeleteStory)
}
