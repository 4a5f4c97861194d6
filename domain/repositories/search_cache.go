package repositories

import (
	"context"

	"rsvp-backend/domain/models"
)

// GuestSearchCache caches search hits keyed by the normalized query.
// Invalidate must make every previously cached entry unreachable.
// Get reports the roster version it read; Set stores under that version, so a
// result computed before an Invalidate is never visible after it.
type GuestSearchCache interface {
	Get(ctx context.Context, query string) (guests []models.Guest, version int64, hit bool, err error)
	Set(ctx context.Context, version int64, query string, guests []models.Guest) error
	Invalidate(ctx context.Context) error
}

// SessionRevocationStore remembers revoked admin session ids until they expire.
type SessionRevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
