package dto

import (
	"time"

	"github.com/google/uuid"
)

// StoryDateLayout is the wire format of takenAt.
const StoryDateLayout = "2006-01-02"

type StoryResponse struct {
	ID          uuid.UUID `json:"id"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	TakenAt     string    `json:"takenAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateStoryRequest struct {
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	Description string `json:"description"`
	TakenAt     string `json:"takenAt"`
}

type UpdateStoryRequest struct {
	Description string `json:"description"`
	TakenAt     string `json:"takenAt" validate:"required"`
}
