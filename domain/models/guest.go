package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestStatus string

const (
	GuestStatusPending   GuestStatus = "pending"
	GuestStatusAttending GuestStatus = "attending"
	GuestStatusDeclined  GuestStatus = "declined"
)

func (s GuestStatus) IsValid() bool {
	switch s {
	case GuestStatusPending, GuestStatusAttending, GuestStatusDeclined:
		return true
	}
	return false
}

type GuestType string

const (
	GuestTypeAdult GuestType = "adult"
	GuestTypeChild GuestType = "child"
)

func (t GuestType) IsValid() bool {
	return t == GuestTypeAdult || t == GuestTypeChild
}

// Guest is a single invitee. FamilyHeadID groups guests one level deep:
// a guest whose FamilyHeadID is nil or equal to its own ID heads a family,
// every other guest pointing at that ID is a member of it.
type Guest struct {
	ID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name  string    `gorm:"not null"`
	Email *string   `gorm:"index"`
	Phone *string

	Status       GuestStatus `gorm:"type:varchar(20);not null;index"`
	Type         GuestType   `gorm:"type:varchar(20);not null"`
	IsOnWaitlist bool        `gorm:"not null;index"`

	FamilyHeadID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (Guest) TableName() string {
	return "guests"
}

// BeforeCreate assigns the ID when the caller has not pre-generated one.
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GuestStatusPending
	}
	if g.Type == "" {
		g.Type = GuestTypeAdult
	}
	return nil
}

// HeadID returns the id of the family this guest belongs to.
func (g *Guest) HeadID() uuid.UUID {
	if g.FamilyHeadID != nil {
		return *g.FamilyHeadID
	}
	return g.ID
}

// IsFamilyHead reports whether the guest can have members pointing at it.
func (g *Guest) IsFamilyHead() bool {
	return g.FamilyHeadID == nil || *g.FamilyHeadID == g.ID
}
