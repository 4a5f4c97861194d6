package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/services"
)

func decodeUpdate(t *testing.T, body string) *UpdateGuestRequest {
	t.Helper()
	var req UpdateGuestRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestField_OmittedNullAndValue(t *testing.T) {
	req := decodeUpdate(t, `{"email": null, "phone": "555"}`)

	assert.False(t, req.Name.Set)
	assert.True(t, req.Email.Set)
	assert.True(t, req.Email.Null)
	assert.Nil(t, req.Email.Ptr())
	assert.True(t, req.Phone.Set)
	assert.False(t, req.Phone.Null)
	assert.Equal(t, "555", *req.Phone.Ptr())
}

func TestUpdateGuestRequest_ToPatch(t *testing.T) {
	t.Run("omitted fields stay untouched", func(t *testing.T) {
		patch, err := decodeUpdate(t, `{"status": "attending"}`).ToPatch()
		require.NoError(t, err)
		require.NotNil(t, patch.Status)
		assert.Equal(t, models.GuestStatusAttending, *patch.Status)
		assert.Nil(t, patch.Name)
		assert.False(t, patch.SetEmail)
		assert.False(t, patch.SetPhone)
		assert.False(t, patch.SetFamilyHead)
	})

	t.Run("null clears nullable fields", func(t *testing.T) {
		patch, err := decodeUpdate(t, `{"email": null, "phone": null, "familyHeadId": null}`).ToPatch()
		require.NoError(t, err)
		assert.True(t, patch.SetEmail)
		assert.Nil(t, patch.Email)
		assert.True(t, patch.SetPhone)
		assert.Nil(t, patch.Phone)
		assert.True(t, patch.SetFamilyHead)
		assert.Nil(t, patch.FamilyHead)
	})

	t.Run("self head", func(t *testing.T) {
		patch, err := decodeUpdate(t, `{"familyHeadId": "self"}`).ToPatch()
		require.NoError(t, err)
		require.NotNil(t, patch.FamilyHead)
		assert.True(t, patch.FamilyHead.Self)
	})

	invalid := []struct {
		name string
		body string
	}{
		{"empty name", `{"name": "  "}`},
		{"null name", `{"name": null}`},
		{"bad email", `{"email": "nope"}`},
		{"bad status", `{"status": "maybe"}`},
		{"null status", `{"status": null}`},
		{"bad type", `{"type": "teen"}`},
		{"null waitlist", `{"isOnWaitlist": null}`},
		{"bad head", `{"familyHeadId": "abc"}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeUpdate(t, tt.body).ToPatch()
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestParseFamilyHead(t *testing.T) {
	id := uuid.New()
	raw := func(s string) *string { return &s }

	head, err := ParseFamilyHead(nil)
	require.NoError(t, err)
	assert.Nil(t, head)

	head, err = ParseFamilyHead(raw("  "))
	require.NoError(t, err)
	assert.Nil(t, head)

	head, err = ParseFamilyHead(raw("self"))
	require.NoError(t, err)
	assert.Equal(t, services.SelfHead(), head)

	head, err = ParseFamilyHead(raw(id.String()))
	require.NoError(t, err)
	assert.Equal(t, services.HeadOf(id), head)

	_, err = ParseFamilyHead(raw("Self"))
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestFamilyRsvpRequest_ToService(t *testing.T) {
	id := uuid.New()
	req := FamilyRsvpRequest{Rsvps: []FamilyRsvpEntry{
		{GuestID: id.String(), Email: "a@example.com", Status: "declined"},
	}}

	entries, err := req.ToService()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].GuestID)
	assert.Equal(t, models.GuestStatusDeclined, entries[0].Status)

	req.Rsvps[0].GuestID = "bad"
	_, err = req.ToService()
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestBulkCreateGuestsRequest_ToService(t *testing.T) {
	self := FamilyHeadSelf
	req := BulkCreateGuestsRequest{Guests: []CreateGuestRequest{
		{Name: "Head", FamilyHeadID: &self},
		{Name: "Kid", Type: "child"},
	}}

	guests, err := req.ToService()
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.True(t, guests[0].FamilyHead.Self)
	assert.Nil(t, guests[1].FamilyHead)
	assert.Equal(t, models.GuestTypeChild, guests[1].Type)
}

func TestFamilyRsvpResultToResponse(t *testing.T) {
	failedID := uuid.New()
	resp := FamilyRsvpResultToResponse(&services.FamilyRsvpResult{
		Failed: []services.FamilyRsvpFailure{{GuestID: failedID, Err: services.ErrGuestNotFound}},
	})

	assert.NotNil(t, resp.Updated)
	assert.Empty(t, resp.Updated)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, failedID, resp.Failed[0].GuestID)
	assert.Equal(t, services.ErrGuestNotFound.Error(), resp.Failed[0].Error)
}
