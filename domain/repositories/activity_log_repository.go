package repositories

import (
	"context"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

type ActivityLogRepository interface {
	// Create a new activity log
	Create(ctx context.Context, log *models.ActivityLog) error

	// Get logs for one guest, newest first
	GetByGuest(ctx context.Context, guestID uuid.UUID, offset, limit int) ([]models.ActivityLog, int64, error)

	// Get recent logs, optionally filtered by type (empty = all)
	GetRecent(ctx context.Context, activityType models.ActivityType, offset, limit int) ([]models.ActivityLog, int64, error)

	// Delete old logs (cleanup)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
