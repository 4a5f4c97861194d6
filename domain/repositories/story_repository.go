package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	// List returns stories ordered by the day they were taken.
	List(ctx context.Context) ([]models.Story, error)
	Update(ctx context.Context, id uuid.UUID, description string, takenAt time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
