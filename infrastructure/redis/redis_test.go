package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := NewRedisClient(RedisConfig{Host: mr.Host(), Port: mr.Port()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()))
	return client, mr
}

func TestGuestSearchCache(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewGuestSearchCache(client, time.Minute)
	ctx := context.Background()

	_, version, hit, err := cache.Get(ctx, "ali")
	require.NoError(t, err)
	assert.False(t, hit)

	guests := []models.Guest{{ID: uuid.New(), Name: "Alice", Status: models.GuestStatusPending, Type: models.GuestTypeAdult}}
	require.NoError(t, cache.Set(ctx, version, "ali", guests))

	cached, _, hit, err := cache.Get(ctx, "ali")
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, cached, 1)
	assert.Equal(t, guests[0].ID, cached[0].ID)
	assert.Equal(t, "Alice", cached[0].Name)

	t.Run("empty results are cached", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, version, "zzz", nil))
		cached, _, hit, err := cache.Get(ctx, "zzz")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Empty(t, cached)
	})

	t.Run("invalidate hides old entries", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx))
		_, current, hit, err := cache.Get(ctx, "ali")
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, version+1, current)
	})

	t.Run("writes under an old version stay hidden", func(t *testing.T) {
		_, current, _, err := cache.Get(ctx, "carol")
		require.NoError(t, err)
		require.NoError(t, cache.Invalidate(ctx))
		require.NoError(t, cache.Set(ctx, current, "carol", guests))

		_, _, hit, err := cache.Get(ctx, "carol")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("entries expire", func(t *testing.T) {
		_, current, _, err := cache.Get(ctx, "bob")
		require.NoError(t, err)
		require.NoError(t, cache.Set(ctx, current, "bob", guests))
		mr.FastForward(2 * time.Minute)
		_, _, hit, err := cache.Get(ctx, "bob")
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("errors surface when redis is gone", func(t *testing.T) {
		mr.Close()
		_, _, _, err := cache.Get(ctx, "ali")
		assert.Error(t, err)
	})
}

func TestSessionRevocationStore(t *testing.T) {
	client, mr := newTestClient(t)
	store := NewSessionRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "s1", 60))
	revoked, err = store.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, store.Revoke(ctx, "expired", 0))
	revoked, err = store.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked, "an already expired session needs no entry")

	mr.FastForward(61 * time.Second)
	revoked, err = store.IsRevoked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
