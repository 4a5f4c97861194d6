package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/logger"
)

type RsvpServiceImpl struct {
	guestRepo   repositories.GuestRepository
	searchCache repositories.GuestSearchCache
	activity    services.ActivityLogService
}

func NewRsvpService(
	guestRepo repositories.GuestRepository,
	searchCache repositories.GuestSearchCache,
	activity services.ActivityLogService,
) services.RsvpService {
	return &RsvpServiceImpl{
		guestRepo:   guestRepo,
		searchCache: searchCache,
		activity:    activity,
	}
}

func (s *RsvpServiceImpl) SubmitRsvp(ctx context.Context, req *services.RsvpRequest) (*models.Guest, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", services.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", services.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = models.GuestStatusAttending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", services.ErrValidation, status)
	}
	phone := normalizeOptional(req.Phone)

	existing, err := s.guestRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.updateExistingRsvp(ctx, existing, name, phone, status)
	case errors.Is(err, repositories.ErrNotFound):
		return s.createRsvpGuest(ctx, name, email, phone, status)
	default:
		return nil, fmt.Errorf("failed to look up guest by email: %w", err)
	}
}

func (s *RsvpServiceImpl) updateExistingRsvp(ctx context.Context, guest *models.Guest, name string, phone *string, status models.GuestStatus) (*models.Guest, error) {
	rows, err := s.guestRepo.Update(ctx, guest.ID, map[string]interface{}{
		"name":   name,
		"phone":  phone,
		"status": status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rsvp: %w", err)
	}
	if rows == 0 {
		return nil, services.ErrGuestNotFound
	}

	updated, err := s.guestRepo.GetByID(ctx, guest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload guest: %w", err)
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Rsvp("rsvp_updated", "RSVP updated existing guest", map[string]interface{}{
		"guest_id": guest.ID.String(),
		"status":   string(status),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		GuestID:      &updated.ID,
		ActivityType: models.ActivityRsvpSubmitted,
		Message:      fmt.Sprintf("%s responded %s", updated.Name, status),
	}, &models.ActivityDetails{Status: string(status)})

	return updated, nil
}

func (s *RsvpServiceImpl) createRsvpGuest(ctx context.Context, name, email string, phone *string, status models.GuestStatus) (*models.Guest, error) {
	guest := &models.Guest{
		ID:           uuid.New(),
		Name:         name,
		Email:        &email,
		Phone:        phone,
		Status:       status,
		Type:         models.GuestTypeAdult,
		IsOnWaitlist: false,
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, services.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create rsvp: %w", err)
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Rsvp("rsvp_created", "RSVP created new guest", map[string]interface{}{
		"guest_id": guest.ID.String(),
		"status":   string(status),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		GuestID:      &guest.ID,
		ActivityType: models.ActivityRsvpGuestCreated,
		Message:      fmt.Sprintf("%s registered and responded %s", guest.Name, status),
	}, &models.ActivityDetails{Status: string(status)})

	return guest, nil
}

func (s *RsvpServiceImpl) SubmitFamilyRsvp(ctx context.Context, entries []services.FamilyRsvpEntry) (*services.FamilyRsvpResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one RSVP is required", services.ErrValidation)
	}

	// Reject the whole request before touching the store when any entry is malformed.
	normalized := make([]services.FamilyRsvpEntry, len(entries))
	for i, entry := range entries {
		entry.Email = strings.TrimSpace(entry.Email)
		if entry.GuestID == uuid.Nil {
			return nil, fmt.Errorf("%w: rsvps[%d].guestId is required", services.ErrValidation, i)
		}
		if entry.Email == "" {
			return nil, fmt.Errorf("%w: rsvps[%d].email is required", services.ErrValidation, i)
		}
		if entry.Status == "" {
			entry.Status = models.GuestStatusAttending
		}
		if !entry.Status.IsValid() {
			return nil, fmt.Errorf("%w: rsvps[%d].status is invalid", services.ErrValidation, i)
		}
		entry.Phone = normalizeOptional(entry.Phone)
		normalized[i] = entry
	}

	result := &services.FamilyRsvpResult{
		Updated: []models.Guest{},
		Failed:  []services.FamilyRsvpFailure{},
	}

	for _, entry := range normalized {
		guest, err := s.applyFamilyEntry(ctx, entry)
		if err != nil {
			logger.RsvpError("family_rsvp_entry_failed", "Family RSVP entry failed", err, map[string]interface{}{
				"guest_id": entry.GuestID.String(),
			})
			result.Failed = append(result.Failed, services.FamilyRsvpFailure{GuestID: entry.GuestID, Err: err})
			continue
		}
		result.Updated = append(result.Updated, *guest)
	}

	if len(result.Updated) > 0 {
		invalidateSearchCache(ctx, s.searchCache)

		ids := make([]string, len(result.Updated))
		names := make([]string, len(result.Updated))
		for i, g := range result.Updated {
			ids[i] = g.ID.String()
			names[i] = g.Name
		}
		recordActivity(ctx, s.activity, &models.ActivityLog{
			GuestID:      &result.Updated[0].ID,
			ActivityType: models.ActivityFamilyRsvpSubmitted,
			Message:      fmt.Sprintf("Family RSVP for %d guests", len(result.Updated)),
		}, &models.ActivityDetails{
			Count:      len(result.Updated),
			GuestIDs:   ids,
			GuestNames: names,
			Failed:     len(result.Failed),
		})
	}

	logger.Rsvp("family_rsvp_submitted", "Family RSVP processed", map[string]interface{}{
		"updated": len(result.Updated),
		"failed":  len(result.Failed),
	})

	return result, nil
}

func (s *RsvpServiceImpl) applyFamilyEntry(ctx context.Context, entry services.FamilyRsvpEntry) (*models.Guest, error) {
	rows, err := s.guestRepo.Update(ctx, entry.GuestID, map[string]interface{}{
		"email":  entry.Email,
		"phone":  entry.Phone,
		"status": entry.Status,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, services.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if rows == 0 {
		return nil, services.ErrGuestNotFound
	}

	guest, err := s.guestRepo.GetByID(ctx, entry.GuestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to reload guest: %w", err)
	}
	return guest, nil
}

// normalizeOptional trims s and maps blank input to nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
