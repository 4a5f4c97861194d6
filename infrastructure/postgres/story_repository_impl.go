package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
)

type StoryRepositoryImpl struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) repositories.StoryRepository {
	return &StoryRepositoryImpl{db: db}
}

func (r *StoryRepositoryImpl) Create(ctx context.Context, story *models.Story) error {
	return translateError(r.db.WithContext(ctx).Create(story).Error)
}

func (r *StoryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	var story models.Story
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&story).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &story, nil
}

func (r *StoryRepositoryImpl) List(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Order("taken_at ASC").
		Order("created_at ASC").
		Find(&stories).Error
	return stories, err
}

func (r *StoryRepositoryImpl) Update(ctx context.Context, id uuid.UUID, description string, takenAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"description": description,
			"taken_at":    takenAt,
		})
	return result.RowsAffected, result.Error
}

func (r *StoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Story{})
	return result.RowsAffected, result.Error
}
