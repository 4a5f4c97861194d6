package services

import (
	"context"

	"rsvp-backend/domain/models"
)

const (
	MinSearchQueryLength = 2
	MaxSearchResults     = 10
)

// GuestWithFamily is a search hit together with its resolved family group.
type GuestWithFamily struct {
	Guest         models.Guest
	FamilyMembers []models.Guest
}

// GuestService is the public lookup side of the roster.
type GuestService interface {
	// SearchGuests matches name, email or phone case-insensitively. Queries shorter
	// than MinSearchQueryLength return nothing without touching the store.
	SearchGuests(ctx context.Context, query string) ([]GuestWithFamily, error)

	// ResolveFamily returns the family group of guest. The result always contains guest.
	ResolveFamily(ctx context.Context, guest *models.Guest) ([]models.Guest, error)
}
