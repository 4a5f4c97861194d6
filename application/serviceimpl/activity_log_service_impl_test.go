package serviceimpl

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/services"
)

func TestActivityLogService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	guestID := uuid.New()

	for i := 0; i < 5; i++ {
		store.activity.Record(ctx, &models.ActivityLog{
			GuestID:      &guestID,
			ActivityType: models.ActivityGuestUpdated,
			Message:      fmt.Sprintf("update %d", i),
		}, &models.ActivityDetails{Fields: []string{"name"}})
	}
	store.activity.Record(ctx, &models.ActivityLog{
		ActivityType: models.ActivityStoryCreated,
		Message:      "story",
	}, nil)

	t.Run("requires admin", func(t *testing.T) {
		_, _, err := store.activity.GetRecent(ctx, nil, "", 1, 10)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
		_, _, err = store.activity.GetByGuest(ctx, nil, guestID, 1, 10)
		assert.ErrorIs(t, err, services.ErrUnauthorized)
	})

	t.Run("pages by guest", func(t *testing.T) {
		logs, total, err := store.activity.GetByGuest(ctx, testAdmin, guestID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, logs, 2)
	})

	t.Run("filters by type", func(t *testing.T) {
		logs, total, err := store.activity.GetRecent(ctx, testAdmin, models.ActivityStoryCreated, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, logs, 1)
		assert.Equal(t, "story", logs[0].Message)
	})

	t.Run("page zero is the first page", func(t *testing.T) {
		logs, total, err := store.activity.GetRecent(ctx, testAdmin, "", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, logs, 6)
	})

	t.Run("cleanup keeps recent entries", func(t *testing.T) {
		deleted, err := store.activity.Cleanup(ctx, 30)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}
