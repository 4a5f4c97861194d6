package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/utils"
)

func GuestToResponse(guest *models.Guest) *GuestResponse {
	if guest == nil {
		return nil
	}

	return &GuestResponse{
		ID:           guest.ID,
		Name:         guest.Name,
		Email:        guest.Email,
		Phone:        guest.Phone,
		Status:       string(guest.Status),
		Type:         string(guest.Type),
		IsOnWaitlist: guest.IsOnWaitlist,
		FamilyHeadID: guest.FamilyHeadID,
		CreatedAt:    guest.CreatedAt,
		UpdatedAt:    guest.UpdatedAt,
	}
}

func GuestsToResponse(guests []models.Guest) []GuestResponse {
	result := make([]GuestResponse, len(guests))
	for i := range guests {
		result[i] = *GuestToResponse(&guests[i])
	}
	return result
}

func SearchResultsToResponse(results []services.GuestWithFamily) []GuestSearchResponse {
	resp := make([]GuestSearchResponse, len(results))
	for i := range results {
		resp[i] = GuestSearchResponse{
			GuestResponse: *GuestToResponse(&results[i].Guest),
			FamilyMembers: GuestsToResponse(results[i].FamilyMembers),
		}
	}
	return resp
}

func FamilyRsvpResultToResponse(result *services.FamilyRsvpResult) *FamilyRsvpResponse {
	resp := &FamilyRsvpResponse{
		Updated: GuestsToResponse(result.Updated),
		Failed:  make([]FamilyRsvpFailure, len(result.Failed)),
	}
	for i, f := range result.Failed {
		resp.Failed[i] = FamilyRsvpFailure{GuestID: f.GuestID, Error: f.Err.Error()}
	}
	return resp
}

func RosterStatsToResponse(stats *services.RosterStats) *RosterStatsResponse {
	return &RosterStatsResponse{
		Total:     stats.Total,
		Adults:    stats.Adults,
		Children:  stats.Children,
		Pending:   stats.Pending,
		Attending: stats.Attending,
		Declined:  stats.Declined,
		Waitlist:  stats.Waitlist,
	}
}

func StoryToResponse(story *models.Story) *StoryResponse {
	return &StoryResponse{
		ID:          story.ID,
		ImageURL:    story.ImageURL,
		Description: story.Description,
		TakenAt:     story.TakenAt.Format(StoryDateLayout),
		CreatedAt:   story.CreatedAt,
	}
}

func StoriesToResponse(stories []models.Story) []StoryResponse {
	result := make([]StoryResponse, len(stories))
	for i := range stories {
		result[i] = *StoryToResponse(&stories[i])
	}
	return result
}

func (r *RsvpRequest) ToService() *services.RsvpRequest {
	return &services.RsvpRequest{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Status: models.GuestStatus(r.Status),
	}
}

func (r *FamilyRsvpRequest) ToService() ([]services.FamilyRsvpEntry, error) {
	entries := make([]services.FamilyRsvpEntry, len(r.Rsvps))
	for i, e := range r.Rsvps {
		id, err := uuid.Parse(e.GuestID)
		if err != nil {
			return nil, fmt.Errorf("%w: rsvps[%d].guestId is not a valid UUID", services.ErrValidation, i)
		}
		entries[i] = services.FamilyRsvpEntry{
			GuestID: id,
			Email:   e.Email,
			Phone:   e.Phone,
			Status:  models.GuestStatus(e.Status),
		}
	}
	return entries, nil
}

func (r *CreateGuestRequest) ToService() (*services.NewGuest, error) {
	head, err := ParseFamilyHead(r.FamilyHeadID)
	if err != nil {
		return nil, err
	}
	return &services.NewGuest{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Type:         models.GuestType(r.Type),
		IsOnWaitlist: r.IsOnWaitlist,
		FamilyHead:   head,
	}, nil
}

func (r *BulkCreateGuestsRequest) ToService() ([]services.NewGuest, error) {
	reqs := make([]services.NewGuest, len(r.Guests))
	for i := range r.Guests {
		req, err := r.Guests[i].ToService()
		if err != nil {
			return nil, fmt.Errorf("guests[%d]: %w", i, err)
		}
		reqs[i] = *req
	}
	return reqs, nil
}

func (r *UpdateWaitlistRequest) ParseIDs() ([]uuid.UUID, error) {
	return ParseUUIDs(r.GuestIDs)
}

// ToPatch validates the request and converts it into a service patch.
func (r *UpdateGuestRequest) ToPatch() (*services.GuestPatch, error) {
	patch := &services.GuestPatch{}

	if r.Name.Set {
		if r.Name.Null || strings.TrimSpace(r.Name.Value) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", services.ErrValidation)
		}
		patch.Name = r.Name.Ptr()
	}
	if r.Email.Set {
		if !r.Email.Null && strings.TrimSpace(r.Email.Value) != "" {
			if err := utils.ValidateVar(strings.TrimSpace(r.Email.Value), "email"); err != nil {
				return nil, fmt.Errorf("%w: email must be a valid email address", services.ErrValidation)
			}
		}
		patch.SetEmail = true
		patch.Email = r.Email.Ptr()
	}
	if r.Phone.Set {
		patch.SetPhone = true
		patch.Phone = r.Phone.Ptr()
	}
	if r.Status.Set {
		if r.Status.Null {
			return nil, fmt.Errorf("%w: status cannot be null", services.ErrValidation)
		}
		status := models.GuestStatus(r.Status.Value)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: status must be one of [pending attending declined]", services.ErrValidation)
		}
		patch.Status = &status
	}
	if r.Type.Set {
		if r.Type.Null {
			return nil, fmt.Errorf("%w: type cannot be null", services.ErrValidation)
		}
		guestType := models.GuestType(r.Type.Value)
		if !guestType.IsValid() {
			return nil, fmt.Errorf("%w: type must be one of [adult child]", services.ErrValidation)
		}
		patch.Type = &guestType
	}
	if r.IsOnWaitlist.Set {
		if r.IsOnWaitlist.Null {
			return nil, fmt.Errorf("%w: isOnWaitlist cannot be null", services.ErrValidation)
		}
		patch.IsOnWaitlist = r.IsOnWaitlist.Ptr()
	}
	if r.FamilyHeadID.Set {
		head, err := ParseFamilyHead(r.FamilyHeadID.Ptr())
		if err != nil {
			return nil, err
		}
		patch.SetFamilyHead = true
		patch.FamilyHead = head
	}

	return patch, nil
}

// ParseFamilyHead reads a familyHeadId that is either a UUID or "self".
func ParseFamilyHead(raw *string) (*services.FamilyHeadRef, error) {
	if raw == nil {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, nil
	}
	if value == FamilyHeadSelf {
		return services.SelfHead(), nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("%w: familyHeadId must be a UUID or %q", services.ErrValidation, FamilyHeadSelf)
	}
	return services.HeadOf(id), nil
}

func ParseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid UUID", services.ErrValidation, s)
		}
		ids[i] = id
	}
	return ids, nil
}

// ParseStoryDate accepts a calendar date or a full RFC 3339 timestamp. Blank means nil.
func ParseStoryDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(StoryDateLayout, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("%w: takenAt must be YYYY-MM-DD", services.ErrValidation)
}
