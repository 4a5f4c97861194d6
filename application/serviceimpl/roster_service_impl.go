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

type RosterServiceImpl struct {
	guestRepo    repositories.GuestRepository
	guestService services.GuestService
	searchCache  repositories.GuestSearchCache
	activity     services.ActivityLogService
}

func NewRosterService(
	guestRepo repositories.GuestRepository,
	guestService services.GuestService,
	searchCache repositories.GuestSearchCache,
	activity services.ActivityLogService,
) services.RosterService {
	return &RosterServiceImpl{
		guestRepo:    guestRepo,
		guestService: guestService,
		searchCache:  searchCache,
		activity:     activity,
	}
}

func (s *RosterServiceImpl) ListGuests(ctx context.Context, admin *services.AdminContext, view services.GuestListView) ([]models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	var filter repositories.GuestListFilter
	switch view {
	case "", services.GuestViewAll:
	case services.GuestViewMain:
		filter.Waitlist = boolPtr(false)
	case services.GuestViewWaitlist:
		filter.Waitlist = boolPtr(true)
	default:
		return nil, fmt.Errorf("%w: unknown view %q", services.ErrValidation, view)
	}

	guests, err := s.guestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *RosterServiceImpl) GetGuest(ctx context.Context, admin *services.AdminContext, id uuid.UUID) (*models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return guest, nil
}

func (s *RosterServiceImpl) GetFamily(ctx context.Context, admin *services.AdminContext, id uuid.UUID) ([]models.Guest, error) {
	guest, err := s.GetGuest(ctx, admin, id)
	if err != nil {
		return nil, err
	}
	return s.guestService.ResolveFamily(ctx, guest)
}

func (s *RosterServiceImpl) Stats(ctx context.Context, admin *services.AdminContext) (*services.RosterStats, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	guests, err := s.guestRepo.List(ctx, repositories.GuestListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load guests: %w", err)
	}

	return ComputeRosterStats(guests), nil
}

// ComputeRosterStats counts the main list and the waitlist size.
func ComputeRosterStats(guests []models.Guest) *services.RosterStats {
	stats := &services.RosterStats{}
	for _, g := range guests {
		if g.IsOnWaitlist {
			stats.Waitlist++
			continue
		}

		stats.Total++
		switch g.Type {
		case models.GuestTypeChild:
			stats.Children++
		default:
			stats.Adults++
		}
		switch g.Status {
		case models.GuestStatusAttending:
			stats.Attending++
		case models.GuestStatusDeclined:
			stats.Declined++
		default:
			stats.Pending++
		}
	}
	return stats
}

func (s *RosterServiceImpl) CreateGuest(ctx context.Context, admin *services.AdminContext, req *services.NewGuest) (*models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	guest, err := buildGuest(req, 0)
	if err != nil {
		return nil, err
	}
	if err := s.checkHeads(ctx, []*models.Guest{guest}); err != nil {
		return nil, err
	}

	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Guest("guest_created", "Guest created", map[string]interface{}{
		"guest_id": guest.ID.String(),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		GuestID:      &guest.ID,
		ActivityType: models.ActivityGuestCreated,
		Message:      fmt.Sprintf("Added %s", guest.Name),
	}, &models.ActivityDetails{Actor: admin.SessionID})

	return guest, nil
}

func (s *RosterServiceImpl) BulkCreate(ctx context.Context, admin *services.AdminContext, reqs []services.NewGuest) ([]models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}
	return s.bulkCreate(ctx, admin, reqs, models.ActivityGuestCreated)
}

func (s *RosterServiceImpl) ImportNames(ctx context.Context, admin *services.AdminContext, text string, guestType models.GuestType, isOnWaitlist bool) ([]models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	names := ParseNameLines(text)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no names to import", services.ErrValidation)
	}

	reqs := make([]services.NewGuest, len(names))
	for i, name := range names {
		reqs[i] = services.NewGuest{
			Name:         name,
			Type:         guestType,
			IsOnWaitlist: isOnWaitlist,
		}
	}
	return s.bulkCreate(ctx, admin, reqs, models.ActivityGuestsImported)
}

// ParseNameLines returns the trimmed non-blank lines of text.
func ParseNameLines(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (s *RosterServiceImpl) bulkCreate(ctx context.Context, admin *services.AdminContext, reqs []services.NewGuest, activityType models.ActivityType) ([]models.Guest, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one guest is required", services.ErrValidation)
	}

	// Ids are assigned up front so "self" resolves inside the same batch.
	batch := make([]*models.Guest, len(reqs))
	for i := range reqs {
		guest, err := buildGuest(&reqs[i], i)
		if err != nil {
			return nil, err
		}
		batch[i] = guest
	}
	if err := s.checkHeads(ctx, batch); err != nil {
		return nil, err
	}

	if err := s.guestRepo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create guests: %w", err)
	}

	created := make([]models.Guest, len(batch))
	ids := make([]string, len(batch))
	for i, g := range batch {
		created[i] = *g
		ids[i] = g.ID.String()
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Guest("guests_bulk_created", "Guests created in bulk", map[string]interface{}{
		"count": len(created),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		ActivityType: activityType,
		Message:      fmt.Sprintf("Added %d guests", len(created)),
	}, &models.ActivityDetails{Count: len(created), GuestIDs: ids, Actor: admin.SessionID})

	return created, nil
}

// buildGuest validates one creation request and assigns its id.
func buildGuest(req *services.NewGuest, index int) (*models.Guest, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: guests[%d].name is required", services.ErrValidation, index)
	}

	guestType := req.Type
	if guestType == "" {
		guestType = models.GuestTypeAdult
	}
	if !guestType.IsValid() {
		return nil, fmt.Errorf("%w: guests[%d].type is invalid", services.ErrValidation, index)
	}

	guest := &models.Guest{
		ID:           uuid.New(),
		Name:         name,
		Email:        normalizeOptional(req.Email),
		Phone:        normalizeOptional(req.Phone),
		Status:       models.GuestStatusPending,
		Type:         guestType,
		IsOnWaitlist: req.IsOnWaitlist,
	}

	if req.FamilyHead != nil {
		headID := req.FamilyHead.ID
		if req.FamilyHead.Self {
			headID = guest.ID
		}
		guest.FamilyHeadID = &headID
	}

	return guest, nil
}

// checkHeads verifies that every head referenced by the batch, other than the
// guests themselves, already exists and is a head.
func (s *RosterServiceImpl) checkHeads(ctx context.Context, batch []*models.Guest) error {
	var headIDs []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, g := range batch {
		if g.FamilyHeadID == nil || *g.FamilyHeadID == g.ID || seen[*g.FamilyHeadID] {
			continue
		}
		seen[*g.FamilyHeadID] = true
		headIDs = append(headIDs, *g.FamilyHeadID)
	}
	if len(headIDs) == 0 {
		return nil
	}

	heads, err := s.guestRepo.GetByIDs(ctx, headIDs)
	if err != nil {
		return fmt.Errorf("failed to load family heads: %w", err)
	}

	found := make(map[uuid.UUID]*models.Guest, len(heads))
	for i := range heads {
		found[heads[i].ID] = &heads[i]
	}
	for _, id := range headIDs {
		head, ok := found[id]
		if !ok {
			return fmt.Errorf("%w: %s does not exist", services.ErrInvalidFamilyHead, id)
		}
		if !head.IsFamilyHead() {
			return fmt.Errorf("%w: %s is a member of another family", services.ErrInvalidFamilyHead, id)
		}
	}
	return nil
}

func (s *RosterServiceImpl) SetWaitlist(ctx context.Context, admin *services.AdminContext, ids []uuid.UUID, isOnWaitlist bool) ([]models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}
	if len(ids) == 0 {
		return []models.Guest{}, nil
	}

	rows, err := s.guestRepo.UpdateWaitlist(ctx, ids, isOnWaitlist)
	if err != nil {
		return nil, fmt.Errorf("failed to update waitlist: %w", err)
	}

	updated, err := s.guestRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to reload guests: %w", err)
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Guest("waitlist_changed", "Waitlist updated", map[string]interface{}{
		"requested":      len(ids),
		"updated":        rows,
		"is_on_waitlist": isOnWaitlist,
	})

	guestIDs := make([]string, len(updated))
	for i, g := range updated {
		guestIDs[i] = g.ID.String()
	}
	recordActivity(ctx, s.activity, &models.ActivityLog{
		ActivityType: models.ActivityWaitlistChanged,
		Message:      fmt.Sprintf("Moved %d guests", len(updated)),
	}, &models.ActivityDetails{
		Count:    len(updated),
		GuestIDs: guestIDs,
		Waitlist: &isOnWaitlist,
		Actor:    admin.SessionID,
	})

	return updated, nil
}

func (s *RosterServiceImpl) UpdateGuest(ctx context.Context, admin *services.AdminContext, id uuid.UUID, patch *services.GuestPatch) (*models.Guest, error) {
	if admin == nil {
		return nil, services.ErrUnauthorized
	}

	existing, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if patch == nil || patch.IsEmpty() {
		return existing, nil
	}

	updates, fields, err := s.patchColumns(ctx, existing, patch)
	if err != nil {
		return nil, err
	}

	rows, err := s.guestRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	if rows == 0 {
		return nil, nil
	}

	updated, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reload guest: %w", err)
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Guest("guest_updated", "Guest updated", map[string]interface{}{
		"guest_id": id.String(),
		"fields":   fields,
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		GuestID:      &updated.ID,
		ActivityType: models.ActivityGuestUpdated,
		Message:      fmt.Sprintf("Updated %s", updated.Name),
	}, &models.ActivityDetails{Fields: fields, Actor: admin.SessionID})

	return updated, nil
}

// patchColumns turns a patch into column updates, validating each field.
func (s *RosterServiceImpl) patchColumns(ctx context.Context, guest *models.Guest, patch *services.GuestPatch) (map[string]interface{}, []string, error) {
	updates := make(map[string]interface{})
	var fields []string

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("%w: name cannot be empty", services.ErrValidation)
		}
		updates["name"] = name
		fields = append(fields, "name")
	}
	if patch.SetEmail {
		updates["email"] = normalizeOptional(patch.Email)
		fields = append(fields, "email")
	}
	if patch.SetPhone {
		updates["phone"] = normalizeOptional(patch.Phone)
		fields = append(fields, "phone")
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, nil, fmt.Errorf("%w: invalid status %q", services.ErrValidation, *patch.Status)
		}
		updates["status"] = *patch.Status
		fields = append(fields, "status")
	}
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return nil, nil, fmt.Errorf("%w: invalid type %q", services.ErrValidation, *patch.Type)
		}
		updates["type"] = *patch.Type
		fields = append(fields, "type")
	}
	if patch.IsOnWaitlist != nil {
		updates["is_on_waitlist"] = *patch.IsOnWaitlist
		fields = append(fields, "isOnWaitlist")
	}
	if patch.SetFamilyHead {
		headID, err := s.resolvePatchHead(ctx, guest, patch.FamilyHead)
		if err != nil {
			return nil, nil, err
		}
		if headID == nil {
			updates["family_head_id"] = nil
		} else {
			updates["family_head_id"] = *headID
		}
		fields = append(fields, "familyHeadId")
	}

	return updates, fields, nil
}

// resolvePatchHead returns the new family_head_id for guest. Only moves under a
// different guest are checked; clearing or pointing at itself is always allowed.
func (s *RosterServiceImpl) resolvePatchHead(ctx context.Context, guest *models.Guest, ref *services.FamilyHeadRef) (*uuid.UUID, error) {
	if ref == nil {
		return nil, nil
	}
	if ref.Self || ref.ID == guest.ID {
		id := guest.ID
		return &id, nil
	}

	head, err := s.guestRepo.GetByID(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s does not exist", services.ErrInvalidFamilyHead, ref.ID)
		}
		return nil, fmt.Errorf("failed to get family head: %w", err)
	}
	if !head.IsFamilyHead() {
		return nil, fmt.Errorf("%w: %s is a member of another family", services.ErrInvalidFamilyHead, ref.ID)
	}

	members, err := s.guestRepo.CountMembers(ctx, guest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count family members: %w", err)
	}
	if members > 0 {
		return nil, fmt.Errorf("%w: guest still heads %d members", services.ErrInvalidFamilyHead, members)
	}

	id := head.ID
	return &id, nil
}

func (s *RosterServiceImpl) DeleteGuest(ctx context.Context, admin *services.AdminContext, id uuid.UUID) error {
	if admin == nil {
		return services.ErrUnauthorized
	}

	rows, err := s.guestRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if rows == 0 {
		return nil
	}

	invalidateSearchCache(ctx, s.searchCache)
	logger.Guest("guest_deleted", "Guest deleted", map[string]interface{}{
		"guest_id": id.String(),
	})
	recordActivity(ctx, s.activity, &models.ActivityLog{
		GuestID:      &id,
		ActivityType: models.ActivityGuestDeleted,
		Message:      "Guest deleted",
	}, &models.ActivityDetails{Actor: admin.SessionID})

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
