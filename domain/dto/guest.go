package dto

import (
	"time"

	"github.com/google/uuid"
)

// FamilyHeadSelf as a familyHeadId makes the guest head its own family.
const FamilyHeadSelf = "self"

type GuestResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        *string    `json:"email"`
	Phone        *string    `json:"phone"`
	Status       string     `json:"status"`
	Type         string     `json:"type"`
	IsOnWaitlist bool       `json:"isOnWaitlist"`
	FamilyHeadID *uuid.UUID `json:"familyHeadId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// GuestSearchResponse is one search hit with its family group.
type GuestSearchResponse struct {
	GuestResponse
	FamilyMembers []GuestResponse `json:"familyMembers"`
}

type SearchGuestsRequest struct {
	Q string `query:"q"`
}

type RsvpRequest struct {
	Name   string  `json:"name" validate:"required"`
	Email  string  `json:"email" validate:"required,email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status" validate:"omitempty,oneof=pending attending declined"`
}

type FamilyRsvpRequest struct {
	Rsvps []FamilyRsvpEntry `json:"rsvps" validate:"required,min=1,dive"`
}

type FamilyRsvpEntry struct {
	GuestID string  `json:"guestId" validate:"required,uuid"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Status  string  `json:"status" validate:"required,oneof=pending attending declined"`
}

type FamilyRsvpFailure struct {
	GuestID uuid.UUID `json:"guestId"`
	Error   string    `json:"error"`
}

type FamilyRsvpResponse struct {
	Updated []GuestResponse     `json:"updated"`
	Failed  []FamilyRsvpFailure `json:"failed"`
}

type CreateGuestRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Type         string  `json:"type" validate:"omitempty,oneof=adult child"`
	IsOnWaitlist bool    `json:"isOnWaitlist"`
	FamilyHeadID *string `json:"familyHeadId" validate:"omitempty,uuid|eq=self"`
}

type BulkCreateGuestsRequest struct {
	Guests []CreateGuestRequest `json:"guests" validate:"required,min=1,dive"`
}

// ImportGuestsRequest carries pasted text, one guest name per line.
type ImportGuestsRequest struct {
	Text         string `json:"text" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=adult child"`
	IsOnWaitlist bool   `json:"isOnWaitlist"`
}

type UpdateWaitlistRequest struct {
	GuestIDs     []string `json:"guestIds" validate:"required,dive,uuid"`
	IsOnWaitlist *bool    `json:"isOnWaitlist" validate:"required"`
}

// UpdateGuestRequest is a partial update; see Field for omitted versus null.
type UpdateGuestRequest struct {
	Name         Field[string] `json:"name"`
	Email        Field[string] `json:"email"`
	Phone        Field[string] `json:"phone"`
	Status       Field[string] `json:"status"`
	Type         Field[string] `json:"type"`
	IsOnWaitlist Field[bool]   `json:"isOnWaitlist"`
	FamilyHeadID Field[string] `json:"familyHeadId"`
}

type GuestListRequest struct {
	View string `query:"view"`
}

type RosterStatsResponse struct {
	Total     int `json:"total"`
	Adults    int `json:"adults"`
	Children  int `json:"children"`
	Pending   int `json:"pending"`
	Attending int `json:"attending"`
	Declined  int `json:"declined"`
	Waitlist  int `json:"waitlist"`
}
