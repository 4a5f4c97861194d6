package services

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrValidation    = errors.New("validation failed")
	ErrGuestNotFound = errors.New("guest not found")
	ErrStoryNotFound = errors.New("story not found")

	// ErrDuplicateEmail is returned when the store rejects an RSVP insert on a unique constraint.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidFamilyHead covers a missing target, a target that is itself a member,
	// and moving a guest that still heads other members.
	ErrInvalidFamilyHead = errors.New("invalid family head")

	// ErrBlobCleanup means the story row is gone but its image could not be removed.
	ErrBlobCleanup = errors.New("story deleted but image cleanup failed")

	ErrStorageNotConfigured = errors.New("blob storage is not configured")
)
