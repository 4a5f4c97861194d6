package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/infrastructure/storage"
	"rsvp-backend/pkg/logger"
)

const storyUploadDir = "stories"

type StoryServiceImpl struct {
	storyRepo repositories.StoryRepository
	storage   storage.BunnyStorage
	activity  services.ActivityLogService
	now       func() time.Time
}

func NewStoryService(storyRepo repositories.StoryRepository, bunnyStorage storage.BunnyStorage, activity services.ActivityLogService) services.StoryService {
	return &StoryServiceImpl{
		storyRepo: storyRepo,
		storage:   bunnyStorage,
		activity:  activity,
		now:       time.Now,
	}
}

func (s *StoryServiceImpl) ListStories(ctx context.Context) ([]models.Story, error) {
	stories, err := s.storyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}

func (s *StoryServiceImpl) CreateStory(ctx context.Context, admin *services.AdminContext, req *services.NewStory) (*models.Story, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return nil, fmt.Errorf("%w: imageUrl is required", services.ErrValidation)
	}

	return s.insertStory(ctx, admin, imageURL, req.Description, req.TakenAt)
}

func (s *StoryServiceImpl) UploadStory(ctx context.Context, admin *services.AdminContext, req *services.StoryUpload) (*models.Story, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}
	if s.storage == nil || !s.storage.IsConfigured() {
		return nil, services.ErrStorageNotConfigured
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(req.ContentType, ";")[0]))
	ext, ok := services.AllowedStoryImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", services.ErrValidation, req.ContentType)
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", services.ErrValidation)
	}
	if len(req.Data) > services.MaxStoryImageSize {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", services.ErrValidation, services.MaxStoryImageSize)
	}

	path := fmt.Sprintf("%s/%s%s", storyUploadDir, uuid.New().String(), ext)
	imageURL, err := s.storage.UploadFile(ctx, path, req.Data, contentType)
	if err != nil {
		logger.StorageError("story_upload_failed", "Failed to upload story image", err, map[string]interface{}{
			"path": path,
		})
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	logger.Storage("story_uploaded", "Story image uploaded", map[string]interface{}{
		"path": path,
		"size": len(req.Data),
	})

	return s.insertStory(ctx, admin, imageURL, req.Description, req.TakenAt)
}

func (s *StoryServiceImpl) insertStory(ctx context.Context, admin *services.AdminContext, imageURL, description string, takenAt *time.Time) (*models.Story, error) {
	story := &models.Story{
		ID:          uuid.New(),
		ImageURL:    imageURL,
		Description: strings.TrimSpace(description),
		TakenAt:     s.storyDate(takenAt),
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	logger.Story("story_created", "Story created", map[string]interface{}{
		"story_id": story.ID.String(),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		StoryID:      &story.ID,
		ActivityType: models.ActivityStoryCreated,
		Message:      "Story added",
	}, &models.ActivityDetails{ImageURL: story.ImageURL, Actor: admin.SessionID})

	return story, nil
}

// storyDate truncates to a calendar day; nil means today.
func (s *StoryServiceImpl) storyDate(t *time.Time) time.Time {
	day := s.now()
	if t != nil {
		day = *t
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *StoryServiceImpl) UpdateStory(ctx context.Context, admin *services.AdminContext, id uuid.UUID, req *services.StoryUpdate) (*models.Story, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	rows, err := s.storyRepo.Update(ctx, id, strings.TrimSpace(req.Description), s.storyDate(&req.TakenAt))
	if err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}
	if rows == 0 {
		return nil, services.ErrStoryNotFound
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to reload story: %w", err)
	}

	logger.Story("story_updated", "Story updated", map[string]interface{}{
		"story_id": id.String(),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		StoryID:      &story.ID,
		ActivityType: models.ActivityStoryUpdated,
		Message:      "Story updated",
	}, &models.ActivityDetails{Actor: admin.SessionID})

	return story, nil
}

func (s *StoryServiceImpl) DeleteStory(ctx context.Context, admin *services.AdminContext, id uuid.UUID) error {
	if admin == nil {
		return services.ErrUnauthorized
	}

	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrStoryNotFound
		}
		return fmt.Errorf("failed to get story: %w", err)
	}

	rows, err := s.storyRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if rows == 0 {
		return services.ErrStoryNotFound
	}

	logger.Story("story_deleted", "Story deleted", map[string]interface{}{
		"story_id": id.String(),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		StoryID:      &id,
		ActivityType: models.ActivityStoryDeleted,
		Message:      "Story deleted",
	}, &models.ActivityDetails{ImageURL: story.ImageURL, Actor: admin.SessionID})

	// Images hosted elsewhere are not ours to delete.
	if s.storage == nil || !s.storage.Owns(story.ImageURL) {
		return nil
	}

	// The row is gone for good; a failed blob delete only leaves an orphaned file.
	if err := s.storage.DeleteByURL(ctx, story.ImageURL); err != nil {
		logger.StorageError("story_blob_delete_failed", "Failed to delete story image", err, map[string]interface{}{
			"story_id":  id.String(),
			"image_url": story.ImageURL,
		})
		return fmt.Errorf("%w: %v", services.ErrBlobCleanup, err)
	}
	logger.Storage("story_blob_deleted", "Story image deleted", map[string]interface{}{
		"image_url": story.ImageURL,
	})

	return nil
}
