package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

// bindBody parses a JSON body and runs its validate tags.
func bindBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fmt.Errorf("%w: invalid request body", services.ErrValidation)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %v", services.ErrValidation, err)
	}
	return nil
}

// respondError maps service errors to status codes. Anything unrecognised is
// logged and reported as fallback with a 500.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return utils.UnauthorizedResponse(c, "Admin session required")
	case errors.Is(err, services.ErrDuplicateEmail):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email already exists", err)
	case errors.Is(err, services.ErrValidation):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	case errors.Is(err, services.ErrInvalidFamilyHead):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid family head", err)
	case errors.Is(err, services.ErrGuestNotFound):
		return utils.NotFoundResponse(c, "Guest not found")
	case errors.Is(err, services.ErrStoryNotFound):
		return utils.NotFoundResponse(c, "Story not found")
	case errors.Is(err, services.ErrStorageNotConfigured):
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Image storage is not configured", err)
	case errors.Is(err, services.ErrBlobCleanup):
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Story deleted but its image could not be removed", err)
	}

	logger.Error(logger.CategoryAPI, "request_failed", fallback, err, map[string]interface{}{
		"path":   c.Path(),
		"method": c.Method(),
	})
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback, nil)
}
