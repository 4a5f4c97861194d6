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

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 100
)

type ActivityLogHandler struct {
	activityLogService services.ActivityLogService
}

func NewActivityLogHandler(activityLogService services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityLogService: activityLogService,
	}
}

// GetActivityLogs handles GET /admin/activity. With guestId it returns that
// guest's history, otherwise the most recent entries, optionally filtered by type.
func (h *ActivityLogHandler) GetActivityLogs(c *fiber.Ctx) error {
	var req dto.ActivityLogListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = defaultActivityLimit
	}
	if req.Limit > maxActivityLimit {
		req.Limit = maxActivityLimit
	}

	admin := middleware.AdminFromContext(c)

	var (
		logs  []models.ActivityLog
		total int64
		err   error
	)
	if req.GuestID != "" {
		guestID, _ := uuid.Parse(req.GuestID)
		logs, total, err = h.activityLogService.GetByGuest(c.UserContext(), admin, guestID, req.Page, req.Limit)
	} else {
		logs, total, err = h.activityLogService.GetRecent(c.UserContext(), admin, models.ActivityType(req.ActivityType), req.Page, req.Limit)
	}
	if err != nil {
		return respondError(c, err, "Failed to fetch activity logs")
	}

	return utils.SuccessResponse(c, "", dto.ActivityLogListResponse{
		Logs:  dto.ActivityLogsToResponse(logs),
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	})
}
