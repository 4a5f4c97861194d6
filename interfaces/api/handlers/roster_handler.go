package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rsvp-backend/domain/dto"
	"rsvp-backend/domain/models"
	"rsvp-backend/domain/services"
	"rsvp-backend/interfaces/api/middleware"
	"rsvp-backend/pkg/utils"
)

// RosterHandler exposes the admin guest list.
type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
	}
}

// ListGuests handles GET /guests?view=all|main|waitlist
func (h *RosterHandler) ListGuests(c *fiber.Ctx) error {
	var req dto.GuestListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	view := services.GuestListView(req.View)
	if view == "" {
		view = services.GuestViewAll
	}

	guests, err := h.rosterService.ListGuests(c.UserContext(), middleware.AdminFromContext(c), view)
	if err != nil {
		return respondError(c, err, "Failed to fetch guests")
	}

	return utils.SuccessResponse(c, "", dto.GuestsToResponse(guests))
}

func (h *RosterHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.rosterService.Stats(c.UserContext(), middleware.AdminFromContext(c))
	if err != nil {
		return respondError(c, err, "Failed to compute stats")
	}

	return utils.SuccessResponse(c, "", dto.RosterStatsToResponse(stats))
}

func (h *RosterHandler) GetGuest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid guest ID", err)
	}

	guest, err := h.rosterService.GetGuest(c.UserContext(), middleware.AdminFromContext(c), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch guest")
	}

	return utils.SuccessResponse(c, "", dto.GuestToResponse(guest))
}

func (h *RosterHandler) GetFamily(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid guest ID", err)
	}

	family, err := h.rosterService.GetFamily(c.UserContext(), middleware.AdminFromContext(c), id)
	if err != nil {
		return respondError(c, err, "Failed to fetch family")
	}

	return utils.SuccessResponse(c, "", dto.GuestsToResponse(family))
}

// CreateGuest handles POST /guests
func (h *RosterHandler) CreateGuest(c *fiber.Ctx) error {
	var req dto.CreateGuestRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to create guest")
	}

	newGuest, err := req.ToService()
	if err != nil {
		return respondError(c, err, "Failed to create guest")
	}

	guest, err := h.rosterService.CreateGuest(c.UserContext(), middleware.AdminFromContext(c), newGuest)
	if err != nil {
		return respondError(c, err, "Failed to create guest")
	}

	return utils.CreatedResponse(c, "Guest created", dto.GuestToResponse(guest))
}

// BulkCreateGuests handles POST /guests/bulk
func (h *RosterHandler) BulkCreateGuests(c *fiber.Ctx) error {
	var req dto.BulkCreateGuestsRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to create guests")
	}

	newGuests, err := req.ToService()
	if err != nil {
		return respondError(c, err, "Failed to create guests")
	}

	guests, err := h.rosterService.BulkCreate(c.UserContext(), middleware.AdminFromContext(c), newGuests)
	if err != nil {
		return respondError(c, err, "Failed to create guests")
	}

	return utils.CreatedResponse(c, "Guests created", dto.GuestsToResponse(guests))
}

// ImportGuests handles POST /guests/import with one name per line.
func (h *RosterHandler) ImportGuests(c *fiber.Ctx) error {
	var req dto.ImportGuestsRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to import guests")
	}

	guests, err := h.rosterService.ImportNames(c.UserContext(), middleware.AdminFromContext(c),
		req.Text, models.GuestType(req.Type), req.IsOnWaitlist)
	if err != nil {
		return respondError(c, err, "Failed to import guests")
	}

	return utils.CreatedResponse(c, "Guests imported", dto.GuestsToResponse(guests))
}

// UpdateWaitlist handles PATCH /guests/status
func (h *RosterHandler) UpdateWaitlist(c *fiber.Ctx) error {
	var req dto.UpdateWaitlistRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to update guests")
	}

	ids, err := req.ParseIDs()
	if err != nil {
		return respondError(c, err, "Failed to update guests")
	}

	guests, err := h.rosterService.SetWaitlist(c.UserContext(), middleware.AdminFromContext(c), ids, *req.IsOnWaitlist)
	if err != nil {
		return respondError(c, err, "Failed to update guests")
	}

	return utils.SuccessResponse(c, "Guests updated", dto.GuestsToResponse(guests))
}

// UpdateGuest handles PATCH /guests/:id. An unknown id succeeds with null data.
func (h *RosterHandler) UpdateGuest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid guest ID", err)
	}

	var req dto.UpdateGuestRequest
	if err := bindBody(c, &req); err != nil {
		return respondError(c, err, "Failed to update guest")
	}

	patch, err := req.ToPatch()
	if err != nil {
		return respondError(c, err, "Failed to update guest")
	}

	guest, err := h.rosterService.UpdateGuest(c.UserContext(), middleware.AdminFromContext(c), id, patch)
	if err != nil {
		return respondError(c, err, "Failed to update guest")
	}

	return utils.SuccessResponse(c, "Guest updated", dto.GuestToResponse(guest))
}

// DeleteGuest handles DELETE /guests/:id
func (h *RosterHandler) DeleteGuest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid guest ID", err)
	}

	if err := h.rosterService.DeleteGuest(c.UserContext(), middleware.AdminFromContext(c), id); err != nil {
		return respondError(c, err, "Failed to delete guest")
	}

	return utils.SuccessResponse(c, "Guest deleted", nil)
}
