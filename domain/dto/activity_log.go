package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

// ActivityLogResponse represents an activity log entry
type ActivityLogResponse struct {
	ID           uuid.UUID  `json:"id"`
	GuestID      *uuid.UUID `json:"guestId,omitempty"`
	StoryID      *uuid.UUID `json:"storyId,omitempty"`
	ActivityType string     `json:"activityType"`
	Message      string     `json:"message"`
	Details      any        `json:"details,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ActivityLogListRequest represents a request to list activity logs
type ActivityLogListRequest struct {
	GuestID      string `query:"guestId" validate:"omitempty,uuid"`
	ActivityType string `query:"activityType"`
	Page         int    `query:"page"`
	Limit        int    `query:"limit"`
}

type ActivityLogListResponse struct {
	Logs  []*ActivityLogResponse `json:"logs"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ActivityLogToResponse converts a model to response DTO
func ActivityLogToResponse(log *models.ActivityLog) *ActivityLogResponse {
	resp := &ActivityLogResponse{
		ID:           log.ID,
		GuestID:      log.GuestID,
		StoryID:      log.StoryID,
		ActivityType: string(log.ActivityType),
		Message:      log.Message,
		CreatedAt:    log.CreatedAt,
	}

	// Parse JSON details if present
	if log.Details != "" {
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(log.Details), &details); err == nil {
			resp.Details = details
		}
	}

	return resp
}

// ActivityLogsToResponse converts a slice of models to response DTOs
func ActivityLogsToResponse(logs []models.ActivityLog) []*ActivityLogResponse {
	result := make([]*ActivityLogResponse, len(logs))
	for i := range logs {
		result[i] = ActivityLogToResponse(&logs[i])
	}
	return result
}
