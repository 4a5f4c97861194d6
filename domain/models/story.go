package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Story is one gallery entry. The image itself lives in blob storage.
type Story struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	ImageURL    string    `gorm:"not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	TakenAt     time.Time `gorm:"type:date;not null;index"`
	CreatedAt   time.Time
}

func (Story) TableName() string {
	return "stories"
}

func (s *Story) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
