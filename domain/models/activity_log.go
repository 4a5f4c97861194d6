package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	// RSVP activities
	ActivityRsvpSubmitted       ActivityType = "rsvp_submitted"
	ActivityRsvpGuestCreated    ActivityType = "rsvp_guest_created"
	ActivityFamilyRsvpSubmitted ActivityType = "family_rsvp_submitted"

	// Roster activities
	ActivityGuestCreated    ActivityType = "guest_created"
	ActivityGuestsImported  ActivityType = "guests_imported"
	ActivityGuestUpdated    ActivityType = "guest_updated"
	ActivityGuestDeleted    ActivityType = "guest_deleted"
	ActivityWaitlistChanged ActivityType = "waitlist_changed"

	// Gallery activities
	ActivityStoryCreated ActivityType = "story_created"
	ActivityStoryUpdated ActivityType = "story_updated"
	ActivityStoryDeleted ActivityType = "story_deleted"
)

// ActivityLog is the audit trail shown on the admin dashboard.
type ActivityLog struct {
	ID           uuid.UUID    `gorm:"primaryKey;type:uuid"`
	GuestID      *uuid.UUID   `gorm:"type:uuid;index"`
	StoryID      *uuid.UUID   `gorm:"type:uuid;index"`
	ActivityType ActivityType `gorm:"type:varchar(50);not null;index"`
	Message      string       `gorm:"type:text"`
	Details      string       `gorm:"type:text"` // JSON encoded ActivityDetails
	CreatedAt    time.Time    `gorm:"index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityDetails is a helper struct for common activity details
type ActivityDetails struct {
	Count      int      `json:"count,omitempty"`
	GuestIDs   []string `json:"guest_ids,omitempty"`
	GuestNames []string `json:"guest_names,omitempty"`
	Status     string   `json:"status,omitempty"`
	Waitlist   *bool    `json:"waitlist,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	Failed     int      `json:"failed,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Actor      string   `json:"actor,omitempty"`
}
