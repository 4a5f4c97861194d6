package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestStoryRepository_ListOrderedByTakenAt(t *testing.T) {
	repo := NewStoryRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Story{ImageURL: "https://cdn.example.com/b.jpg", TakenAt: day(2023, 6, 1)}))
	require.NoError(t, repo.Create(ctx, &models.Story{ImageURL: "https://cdn.example.com/a.jpg", TakenAt: day(2021, 2, 14)}))
	require.NoError(t, repo.Create(ctx, &models.Story{ImageURL: "https://cdn.example.com/c.jpg", TakenAt: day(2024, 12, 31)}))

	stories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "https://cdn.example.com/a.jpg", stories[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", stories[1].ImageURL)
	assert.Equal(t, "https://cdn.example.com/c.jpg", stories[2].ImageURL)
}

func TestStoryRepository_UpdateAndDelete(t *testing.T) {
	repo := NewStoryRepository(newTestDB(t))
	ctx := context.Background()

	story := &models.Story{ImageURL: "https://cdn.example.com/a.jpg", Description: "first", TakenAt: day(2021, 2, 14)}
	require.NoError(t, repo.Create(ctx, story))
	require.NotEqual(t, uuid.Nil, story.ID)

	rows, err := repo.Update(ctx, story.ID, "proposal", day(2022, 7, 9))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetByID(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, "proposal", got.Description)
	assert.Equal(t, "2022-07-09", got.TakenAt.Format("2006-01-02"))

	rows, err = repo.Update(ctx, uuid.New(), "x", day(2022, 1, 1))
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.Delete(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.GetByID(ctx, story.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
