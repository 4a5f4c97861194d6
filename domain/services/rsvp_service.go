package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

type RsvpRequest struct {
	Name   string
	Email  string
	Phone  *string
	Status models.GuestStatus // empty means attending
}

type FamilyRsvpEntry struct {
	GuestID uuid.UUID
	Email   string
	Phone   *string
	Status  models.GuestStatus
}

// FamilyRsvpFailure describes one entry that could not be applied.
type FamilyRsvpFailure struct {
	GuestID uuid.UUID
	Err     error
}

// FamilyRsvpResult is returned even when some entries failed. Entries are
// applied one by one and successful ones are never rolled back.
type FamilyRsvpResult struct {
	Updated []models.Guest
	Failed  []FamilyRsvpFailure
}

// AllNotFound reports whether every failure was a missing guest.
func (r *FamilyRsvpResult) AllNotFound() bool {
	for _, f := range r.Failed {
		if !errors.Is(f.Err, ErrGuestNotFound) {
			return false
		}
	}
	return true
}

type RsvpService interface {
	// SubmitRsvp updates the guest owning req.Email, or creates one when nobody has it.
	SubmitRsvp(ctx context.Context, req *RsvpRequest) (*models.Guest, error)

	SubmitFamilyRsvp(ctx context.Context, entries []FamilyRsvpEntry) (*FamilyRsvpResult, error)
}
