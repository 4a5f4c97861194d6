package handlers

import (
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/pkg/utils"
)

// storyImageField is the multipart field carrying the uploaded image.
const storyImageField = "image"

type StoryHandler struct {
	storyService services.StoryService
}

func NewStoryHandler(storyService services.StoryService) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
	}
}

// ListStories handles GET /stories (public)
func (h *StoryHandler) ListStories(c *fiber.Ctx) error {
	stories, err := h.storyService.ListStories(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch stories")
	}

	return utils.SuccessResponse(c, "", dto.StoriesToResponse(stories))
}

// CreateStory handles POST /stories for images already hosted somewhere.
func (h *StoryHandler) CreateStory(c *fiber.Ctx) error {
	var req dto.CreateStoryRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to create story")
	}

	takenAt, err := dto.ParseStoryDate(req.TakenAt)
	if err != nil {
		return respondError(c, err, "Failed to create story")
	}

	story, err := h.storyService.CreateStory(c.UserContext(), middleware.AdminFromContext(c), &services.NewStory{
		ImageURL:    req.ImageURL,
		Description: req.Description,
		TakenAt:     takenAt,
	})
	if err != nil {
		return respondError(c, err, "Failed to create story")
	}

	return utils.CreatedResponse(c, "Story created", dto.StoryToResponse(story))
}

// UploadStory handles POST /stories/upload (multipart: image, description, takenAt).
// The content type is sniffed from the bytes; the client header is not trusted.
func (h *StoryHandler) UploadStory(c *fiber.Ctx) error {
	file, err := c.FormFile(storyImageField)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Image file is required", err)
	}
	if file.Size > services.MaxStoryImageSize {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed",
			fmt.Errorf("image exceeds %d bytes", services.MaxStoryImageSize))
	}

	takenAt, err := dto.ParseStoryDate(c.FormValue("takenAt"))
	if err != nil {
		return respondError(c, err, "Failed to upload story")
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, err, "Failed to read image")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, services.MaxStoryImageSize+1))
	if err != nil {
		return respondError(c, err, "Failed to read image")
	}

	story, err := h.storyService.UploadStory(c.UserContext(), middleware.AdminFromContext(c), &services.StoryUpload{
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
		Description: c.FormValue("description"),
		TakenAt:     takenAt,
	})
	if err != nil {
		return respondError(c, err, "Failed to upload story")
	}

	return utils.CreatedResponse(c, "Story uploaded", dto.StoryToResponse(story))
}

// UpdateStory handles PATCH /stories/:id
func (h *StoryHandler) UpdateStory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid story ID", err)
	}

	var req dto.UpdateStoryRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to update story")
	}

	takenAt, err := dto.ParseStoryDate(req.TakenAt)
	if err != nil {
		return respondError(c, err, "Failed to update story")
	}
	if takenAt == nil {
		return respondError(c, fmt.Errorf("%w: takenAt is required", services.ErrValidation), "Failed to update story")
	}

	story, err := h.storyService.UpdateStory(c.UserContext(), middleware.AdminFromContext(c), id, &services.StoryUpdate{
		Description: req.Description,
		TakenAt:     *takenAt,
	})
	if err != nil {
		return respondError(c, err, "Failed to update story")
	}

	return utils.SuccessResponse(c, "Story updated", dto.StoryToResponse(story))
}

// DeleteStory handles DELETE /stories/:id
func (h *StoryHandler) DeleteStory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid story ID", err)
	}

	if err := h.storyService.DeleteStory(c.UserContext(), middleware.AdminFromContext(c), id); err != nil {
		return respondError(c, err, "Failed to delete story")
	}

	return utils.SuccessResponse(c, "Story deleted", nil)
}
