package serviceimpl

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
)

type ActivityLogServiceImpl struct {
	activityLogRepo repositories.ActivityLogRepository
}

func NewActivityLogService(activityLogRepo repositories.ActivityLogRepository) services.ActivityLogService {
	return &ActivityLogServiceImpl{
		activityLogRepo: activityLogRepo,
	}
}

func (s *ActivityLogServiceImpl) Record(ctx context.Context, entry *models.ActivityLog, details *models.ActivityDetails) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = string(raw)
		}
	}

	if err := s.activityLogRepo.Create(ctx, entry); err != nil {
		logger.Error(logger.CategoryDB, "activity_log_failed", "Failed to record activity", err, map[string]interface{}{
			"activity_type": string(entry.ActivityType),
		})
	}
}

func (s *ActivityLogServiceImpl) GetByGuest(ctx context.Context, admin *services.AdminContext, guestID uuid.UUID, page, limit int) ([]models.ActivityLog, int64, error) {
	if admin == nil {
		return nil, 0, services.ErrUnauthorized
	}
	return s.activityLogRepo.GetByGuest(ctx, guestID, pageOffset(page, limit), limit)
}

func (s *ActivityLogServiceImpl) GetRecent(ctx context.Context, admin *services.AdminContext, activityType models.ActivityType, page, limit int) ([]models.ActivityLog, int64, error) {
	if admin == nil {
		return nil, 0, services.ErrUnauthorized
	}
	return s.activityLogRepo.GetRecent(ctx, activityType, pageOffset(page, limit), limit)
}

func (s *ActivityLogServiceImpl) Cleanup(ctx context.Context, days int) (int64, error) {
	return s.activityLogRepo.DeleteOlderThan(ctx, days)
}

// pageOffset converts a 1-based page into a row offset.
func pageOffset(page, limit int) int {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return offset
}

// recordActivity is a nil-safe shorthand used by the roster, RSVP and story services.
func recordActivity(ctx context.Context, activity services.ActivityLogService, entry *models.ActivityLog, details *models.ActivityDetails) {
	if activity == nil {
		return
	}
	activity.Record(ctx, entry, details)
}
