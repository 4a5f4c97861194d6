package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
)

const (
	searchVersionKey = "rsvp:guests:search:version"
	searchEntryKey   = "rsvp:guests:search:v%d:%s"

	DefaultSearchCacheTTL = 5 * time.Minute
)

// GuestSearchCache keys entries by a roster version. Invalidate bumps the
// version so old entries are never read again and simply expire.
type GuestSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestSearchCache(client *RedisClient, ttl time.Duration) repositories.GuestSearchCache {
	if ttl <= 0 {
		ttl = DefaultSearchCacheTTL
	}
	return &GuestSearchCache{
		client: client.Client(),
		ttl:    ttl,
	}
}

func (c *GuestSearchCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, searchVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *GuestSearchCache) Get(ctx context.Context, query string) ([]models.Guest, int64, bool, error) {
	v, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, fmt.Sprintf(searchEntryKey, v, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, v, false, nil
	}
	if err != nil {
		return nil, v, false, err
	}

	var guests []models.Guest
	if err := json.Unmarshal(raw, &guests); err != nil {
		return nil, v, false, fmt.Errorf("failed to decode cached search: %w", err)
	}
	return guests, v, true, nil
}

// Set writes under the version Get returned. If the roster moved on since, the
// entry lands under a dead key and expires unread.
func (c *GuestSearchCache) Set(ctx context.Context, version int64, query string, guests []models.Guest) error {
	if guests == nil {
		guests = []models.Guest{}
	}
	raw, err := json.Marshal(guests)
	if err != nil {
		return fmt.Errorf("failed to encode search results: %w", err)
	}

	return c.client.Set(ctx, fmt.Sprintf(searchEntryKey, version, query), raw, c.ttl).Err()
}

func (c *GuestSearchCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, searchVersionKey).Err()
}
