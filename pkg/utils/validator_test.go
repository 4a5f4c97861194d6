package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleEntry struct {
	GuestID string `json:"guestId" validate:"required,uuid"`
}

type sampleRequest struct {
	Name   string        `json:"name" validate:"required"`
	Email  string        `json:"email" validate:"required,email"`
	Status string        `json:"status" validate:"omitempty,oneof=pending attending"`
	Items  []sampleEntry `json:"items" validate:"required,min=1,dive"`
}

func TestValidateStruct(t *testing.T) {
	valid := sampleRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Items: []sampleEntry{{GuestID: "4f9f5b0e-8a9e-4d1c-9c56-0d5c3c1f6a11"}},
	}
	assert.NoError(t, ValidateStruct(valid))

	err := ValidateStruct(sampleRequest{
		Email:  "nope",
		Status: "maybe",
		Items:  []sampleEntry{{GuestID: "x"}},
	})
	if assert.Error(t, err) {
		msg := err.Error()
		assert.Contains(t, msg, "name is required")
		assert.Contains(t, msg, "email must be a valid email address")
		assert.Contains(t, msg, "status must be one of [pending attending]")
		assert.Contains(t, msg, "items[0].guestId must be a valid UUID")
	}

	err = ValidateStruct(sampleRequest{Name: "A", Email: "a@example.com", Items: []sampleEntry{}})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "items must have at least 1 items")
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, ValidateVar("a@example.com", "email"))
	assert.Error(t, ValidateVar("not-an-email", "email"))
}
