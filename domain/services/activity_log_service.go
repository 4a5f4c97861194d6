package services

import (
	"context"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

type ActivityLogService interface {
	// Record appends an entry. Failures are logged, never returned.
	Record(ctx context.Context, entry *models.ActivityLog, details *models.ActivityDetails)

	// GetByGuest returns activity logs for a guest with pagination
	GetByGuest(ctx context.Context, admin *AdminContext, guestID uuid.UUID, page, limit int) ([]models.ActivityLog, int64, error)

	// GetRecent returns recent activity logs, optionally filtered by type
	GetRecent(ctx context.Context, admin *AdminContext, activityType models.ActivityType, page, limit int) ([]models.ActivityLog, int64, error)

	// Cleanup deletes old activity logs
	Cleanup(ctx context.Context, days int) (int64, error)
}
