package services

import (
	"context"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

type GuestListView string

const (
	GuestViewAll      GuestListView = "all"
	GuestViewMain     GuestListView = "main"
	GuestViewWaitlist GuestListView = "waitlist"
)

// FamilyHeadRef points a guest at a family head. Self makes the guest head its own family.
type FamilyHeadRef struct {
	Self bool
	ID   uuid.UUID
}

func SelfHead() *FamilyHeadRef {
	return &FamilyHeadRef{Self: true}
}

func HeadOf(id uuid.UUID) *FamilyHeadRef {
	return &FamilyHeadRef{ID: id}
}

// NewGuest is one roster entry created by an admin. Status always starts pending.
type NewGuest struct {
	Name         string
	Email        *string
	Phone        *string
	Type         models.GuestType // empty means adult
	IsOnWaitlist bool
	FamilyHead   *FamilyHeadRef
}

// GuestPatch is a partial update. Nil pointers leave the column untouched;
// the Set* flags with a nil value clear the nullable columns.
type GuestPatch struct {
	Name         *string
	Status       *models.GuestStatus
	Type         *models.GuestType
	IsOnWaitlist *bool

	SetEmail bool
	Email    *string

	SetPhone bool
	Phone    *string

	SetFamilyHead bool
	FamilyHead    *FamilyHeadRef
}

// IsEmpty reports whether the patch would change nothing.
func (p *GuestPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.Type == nil && p.IsOnWaitlist == nil &&
		!p.SetEmail && !p.SetPhone && !p.SetFamilyHead
}

// RosterStats counts the main list only; Waitlist is reported separately.
type RosterStats struct {
	Total     int
	Adults    int
	Children  int
	Pending   int
	Attending int
	Declined  int
	Waitlist  int
}

// RosterService holds every admin mutation of the guest list.
type RosterService interface {
	ListGuests(ctx context.Context, admin *AdminContext, view GuestListView) ([]models.Guest, error)
	GetGuest(ctx context.Context, admin *AdminContext, id uuid.UUID) (*models.Guest, error)
	GetFamily(ctx context.Context, admin *AdminContext, id uuid.UUID) ([]models.Guest, error)
	Stats(ctx context.Context, admin *AdminContext) (*RosterStats, error)

	CreateGuest(ctx context.Context, admin *AdminContext, req *NewGuest) (*models.Guest, error)
	// BulkCreate inserts every entry in one statement.
	BulkCreate(ctx context.Context, admin *AdminContext, reqs []NewGuest) ([]models.Guest, error)
	// ImportNames creates one guest per non-blank line of text.
	ImportNames(ctx context.Context, admin *AdminContext, text string, guestType models.GuestType, isOnWaitlist bool) ([]models.Guest, error)

	SetWaitlist(ctx context.Context, admin *AdminContext, ids []uuid.UUID, isOnWaitlist bool) ([]models.Guest, error)
	// UpdateGuest returns nil without error when the guest does not exist.
	UpdateGuest(ctx context.Context, admin *AdminContext, id uuid.UUID, patch *GuestPatch) (*models.Guest, error)
	DeleteGuest(ctx context.Context, admin *AdminContext, id uuid.UUID) error
}
