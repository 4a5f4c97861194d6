package services

import (
	"context"
	"time"
)

// AdminContext proves the caller holds a valid admin session. Every admin
// operation takes one and rejects nil.
type AdminContext struct {
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type AuthService interface {
	// Login checks the admin password and issues a signed session token.
	Login(ctx context.Context, password string) (token string, admin *AdminContext, err error)

	// Authenticate validates a session token and returns its admin context.
	Authenticate(ctx context.Context, token string) (*AdminContext, error)

	// Logout revokes the session until it would have expired anyway.
	Logout(ctx context.Context, admin *AdminContext) error
}
