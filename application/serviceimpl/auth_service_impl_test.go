package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rsvp-backend/domain/services"
	"rsvp-backend/pkg/utils"
)

const testJWTSecret = "test-secret"

func TestLogin_PlainPassword(t *testing.T) {
	svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "letmein"}, nil)
	ctx := context.Background()

	token, admin, err := svc.Login(ctx, "letmein")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, admin.SessionID)
	assert.Equal(t, DefaultAdminSessionTTL, admin.ExpiresAt.Sub(admin.IssuedAt))

	_, _, err = svc.Login(ctx, "wrong")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, _, err = svc.Login(ctx, "")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestLogin_HashWinsOverPlain(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(AuthConfig{
		JWTSecret:    testJWTSecret,
		PasswordHash: string(hash),
		Password:     "plain",
	}, nil)
	ctx := context.Background()

	_, _, err = svc.Login(ctx, "hashed-secret")
	assert.NoError(t, err)

	_, _, err = svc.Login(ctx, "plain")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret}, nil)

	_, _, err := svc.Login(context.Background(), "anything")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	revocations := newMemoryRevocations()
	svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "pw", TokenTTL: time.Hour}, revocations)
	ctx := context.Background()

	token, admin, err := svc.Login(ctx, "pw")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, admin.SessionID, got.SessionID)
		assert.True(t, got.ExpiresAt.Equal(admin.ExpiresAt))
	})

	t.Run("bearer prefix", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "Bearer "+token)
		assert.NoError(t, err)
	})

	t.Run("garbage and foreign signatures", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, services.ErrUnauthorized)

		foreign, err := utils.GenerateAdminToken("other-secret", "s1", time.Now(), time.Hour)
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, foreign)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := utils.GenerateAdminToken(testJWTSecret, "s2", time.Now().Add(-2*time.Hour), time.Hour)
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, expired)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("revocation store failure refuses", func(t *testing.T) {
		revocations.err = errors.New("redis down")
		defer func() { revocations.err = nil }()

		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes until expiry", func(t *testing.T) {
		revocations := newMemoryRevocations()
		svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "pw", TokenTTL: time.Hour}, revocations)

		token, admin, err := svc.Login(ctx, "pw")
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, admin))

		ttl, ok := revocations.revoked[admin.SessionID]
		require.True(t, ok)
		assert.InDelta(t, 3600, ttl, 5)

		_, err = svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("without a store", func(t *testing.T) {
		svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "pw"}, nil)

		token, admin, err := svc.Login(ctx, "pw")
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, admin))

		_, err = svc.Authenticate(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("store error", func(t *testing.T) {
		revocations := newMemoryRevocations()
		revocations.err = errors.New("redis down")
		svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "pw"}, revocations)

		_, admin, err := svc.Login(ctx, "pw")
		require.NoError(t, err)
		assert.Error(t, svc.Logout(ctx, admin))
	})

	t.Run("nil admin", func(t *testing.T) {
		svc := NewAuthService(AuthConfig{JWTSecret: testJWTSecret, Password: "pw"}, nil)
		assert.ErrorIs(t, svc.Logout(ctx, nil), services.ErrUnauthorized)
	})
}
