package handlers

import (
	"github.com/gofiber/fiber/v2"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/utils"
)

// GuestHandler serves the public search and RSVP endpoints.
type GuestHandler struct {
	guestService services.GuestService
	rsvpService  services.RsvpService
}

func NewGuestHandler(guestService services.GuestService, rsvpService services.RsvpService) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
		rsvpService:  rsvpService,
	}
}

// SearchGuests handles GET /guests/search?q=
func (h *GuestHandler) SearchGuests(c *fiber.Ctx) error {
	var req dto.SearchGuestsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	results, err := h.guestService.SearchGuests(c.UserContext(), req.Q)
	if err != nil {
		return respondError(c, err, "Failed to search guests")
	}

	return utils.SuccessResponse(c, "", dto.SearchResultsToResponse(results))
}

// SubmitRsvp handles POST /guests/rsvp
func (h *GuestHandler) SubmitRsvp(c *fiber.Ctx) error {
	var req dto.RsvpRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to create RSVP")
	}

	guest, err := h.rsvpService.SubmitRsvp(c.UserContext(), req.ToService())
	if err != nil {
		return respondError(c, err, "Failed to create RSVP")
	}

	return utils.CreatedResponse(c, "RSVP saved", dto.GuestToResponse(guest))
}

// SubmitFamilyRsvp handles POST /guests/rsvp/family. Partial results are
// always returned in data, even when some entries failed.
func (h *GuestHandler) SubmitFamilyRsvp(c *fiber.Ctx) error {
	var req dto.FamilyRsvpRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to create family RSVP")
	}

	entries, err := req.ToService()
	if err != nil {
		return respondError(c, err, "Failed to create family RSVP")
	}

	result, err := h.rsvpService.SubmitFamilyRsvp(c.UserContext(), entries)
	if err != nil {
		return respondError(c, err, "Failed to create family RSVP")
	}

	data := dto.FamilyRsvpResultToResponse(result)
	switch {
	case len(result.Failed) == 0:
		return utils.CreatedResponse(c, "Family RSVP saved", data)
	case result.AllNotFound():
		return utils.ErrorResponseWithData(c, fiber.StatusBadRequest, "Some guests were not found", data)
	default:
		return utils.ErrorResponseWithData(c, fiber.StatusInternalServerError, "Failed to create family RSVP", data)
	}
}
