package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when the store rejects a row on a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

// GuestListFilter narrows List. A nil Waitlist returns every guest.
type GuestListFilter struct {
	Waitlist *bool
}

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	CreateBatch(ctx context.Context, guests []*models.Guest) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	// GetByEmail returns the earliest created guest with exactly this email.
	GetByEmail(ctx context.Context, email string) (*models.Guest, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Guest, error)

	// Search does a case-insensitive substring match on name, email and phone.
	Search(ctx context.Context, term string, limit int) ([]models.Guest, error)
	// GetFamily returns the head with the given id plus every guest pointing at it.
	GetFamily(ctx context.Context, headID uuid.UUID) ([]models.Guest, error)
	CountMembers(ctx context.Context, headID uuid.UUID) (int64, error)
	List(ctx context.Context, filter GuestListFilter) ([]models.Guest, error)

	// Update applies only the given columns and reports how many rows matched.
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (int64, error)
	UpdateWaitlist(ctx context.Context, ids []uuid.UUID, isOnWaitlist bool) (int64, error)

	// Delete clears family references to the guest and removes it in one transaction.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
