package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
)

func TestActivityLogRepository_GetByGuestPaginates(t *testing.T) {
	repo := NewActivityLogRepository(newTestDB(t))
	ctx := context.Background()

	guestID := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.ActivityLog{
			GuestID:      &guestID,
			ActivityType: models.ActivityGuestUpdated,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActivityType: models.ActivityStoryCreated}))

	logs, total, err := repo.GetByGuest(ctx, guestID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.After(logs[1].CreatedAt), "newest first")

	logs, _, err = repo.GetByGuest(ctx, guestID, 4, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestActivityLogRepository_GetRecentFiltersByType(t *testing.T) {
	repo := NewActivityLogRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActivityType: models.ActivityStoryCreated}))
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActivityType: models.ActivityRsvpSubmitted}))
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActivityType: models.ActivityRsvpSubmitted}))

	logs, total, err := repo.GetRecent(ctx, models.ActivityRsvpSubmitted, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)

	_, total, err = repo.GetRecent(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestActivityLogRepository_DeleteOlderThan(t *testing.T) {
	repo := NewActivityLogRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ActivityLog{
		ActivityType: models.ActivityGuestCreated,
		CreatedAt:    time.Now().AddDate(0, 0, -100),
	}))
	require.NoError(t, repo.Create(ctx, &models.ActivityLog{ActivityType: models.ActivityGuestCreated}))

	deleted, err := repo.DeleteOlderThan(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, total, err := repo.GetRecent(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
