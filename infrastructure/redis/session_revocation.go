package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"rsvp-backend/domain/repositories"
)

const revokedSessionKey = "rsvp:admin:revoked:"

type SessionRevocationStore struct {
	client *redis.Client
}

func NewSessionRevocationStore(client *RedisClient) repositories.SessionRevocationStore {
	return &SessionRevocationStore{client: client.Client()}
}

func (s *SessionRevocationStore) Revoke(ctx context.Context, sessionID string, ttlSeconds int64) error {
	if ttlSeconds <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedSessionKey+sessionID, 1, time.Duration(ttlSeconds)*time.Second).Err()
}

func (s *SessionRevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedSessionKey+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
