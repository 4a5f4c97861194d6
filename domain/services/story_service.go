package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

const MaxStoryImageSize = 10 << 20

// AllowedStoryImageTypes maps accepted content types to the stored file extension.
var AllowedStoryImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type NewStory struct {
	ImageURL    string
	Description string
	TakenAt     *time.Time // nil means today
}

type StoryUpload struct {
	ContentType string
	Data        []byte
	Description string
	TakenAt     *time.Time
}

type StoryUpdate struct {
	Description string
	TakenAt     time.Time
}

type StoryService interface {
	ListStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, admin *AdminContext, req *NewStory) (*models.Story, error)
	// UploadStory stores the image in blob storage before inserting the row.
	UploadStory(ctx context.Context, admin *AdminContext, req *StoryUpload) (*models.Story, error)
	UpdateStory(ctx context.Context, admin *AdminContext, id uuid.UUID, req *StoryUpdate) (*models.Story, error)
	// DeleteStory removes the row first, then the image. The row is not restored
	// when the image delete fails.
	DeleteStory(ctx context.Context, admin *AdminContext, id uuid.UUID) error
}
