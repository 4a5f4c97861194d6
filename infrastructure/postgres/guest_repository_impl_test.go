package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsvp-backend/domain/models"
	"rsvp-backend/domain/repositories"
)

func createGuest(t *testing.T, repo repositories.GuestRepository, guest *models.Guest) *models.Guest {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), guest))
	return guest
}

func TestGuestRepository_CreateAndGet(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	guest := createGuest(t, repo, &models.Guest{
		Name:  "Alice Wonderland",
		Email: strPtr("alice@example.com"),
		Phone: strPtr("555-0100"),
		Type:  models.GuestTypeChild,
	})
	require.NotEqual(t, uuid.Nil, guest.ID)

	got, err := repo.GetByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, got.ID)
	assert.Equal(t, "Alice Wonderland", got.Name)
	assert.Equal(t, "alice@example.com", *got.Email)
	assert.Equal(t, "555-0100", *got.Phone)
	assert.Equal(t, models.GuestStatusPending, got.Status)
	assert.Equal(t, models.GuestTypeChild, got.Type)
	assert.False(t, got.IsOnWaitlist)
	assert.Nil(t, got.FamilyHeadID)
}

func TestGuestRepository_GetByIDNotFound(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGuestRepository_CreateDuplicateID(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	guest := createGuest(t, repo, &models.Guest{Name: "Alice"})

	err := repo.Create(context.Background(), &models.Guest{ID: guest.ID, Name: "Alice again"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestGuestRepository_CreateBatchKeepsOrder(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	// Reverse alphabetical so neither name nor id order can explain the result.
	batch := make([]*models.Guest, 30)
	want := make([]string, len(batch))
	for i := range batch {
		want[i] = fmt.Sprintf("Guest %02d", len(batch)-i)
		batch[i] = &models.Guest{Name: want[i]}
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	for i := 1; i < len(batch); i++ {
		assert.True(t, batch[i].CreatedAt.After(batch[i-1].CreatedAt), "created_at must increase at %d", i)
	}

	for round := 0; round < 3; round++ {
		all, err := repo.List(ctx, repositories.GuestListFilter{})
		require.NoError(t, err)
		got := make([]string, len(all))
		for i, g := range all {
			got[i] = g.Name
		}
		assert.Equal(t, want, got)
	}
}

func TestGuestRepository_GetByEmailPrefersEarliest(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	first := createGuest(t, repo, &models.Guest{Name: "First", Email: strPtr("shared@example.com")})
	time.Sleep(5 * time.Millisecond)
	createGuest(t, repo, &models.Guest{Name: "Second", Email: strPtr("shared@example.com")})

	got, err := repo.GetByEmail(ctx, "shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGuestRepository_Search(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	alice := createGuest(t, repo, &models.Guest{Name: "Alice Wonderland"})
	createGuest(t, repo, &models.Guest{Name: "Bob Builder", Email: strPtr("bob@build.io"), Phone: strPtr("555-0199")})

	t.Run("substring of name", func(t *testing.T) {
		got, err := repo.Search(ctx, "an", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, alice.ID, got[0].ID)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, err := repo.Search(ctx, "WONDER", 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, alice.ID, got[0].ID)
	})

	t.Run("email and phone", func(t *testing.T) {
		got, err := repo.Search(ctx, "build.io", 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.Search(ctx, "0199", 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		got, err := repo.Search(ctx, "%", 10)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Search(ctx, "_", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.Search(ctx, "b", 1)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestGuestRepository_FamilyQueries(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	headID := uuid.New()
	head := createGuest(t, repo, &models.Guest{ID: headID, Name: "Head", FamilyHeadID: &headID})
	kid := createGuest(t, repo, &models.Guest{Name: "Kid", Type: models.GuestTypeChild, FamilyHeadID: &head.ID})
	createGuest(t, repo, &models.Guest{Name: "Stranger"})

	family, err := repo.GetFamily(ctx, head.ID)
	require.NoError(t, err)
	require.Len(t, family, 2)
	assert.ElementsMatch(t, []uuid.UUID{head.ID, kid.ID}, []uuid.UUID{family[0].ID, family[1].ID})

	count, err := repo.CountMembers(ctx, head.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountMembers(ctx, kid.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGuestRepository_ListFilter(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	createGuest(t, repo, &models.Guest{Name: "Main"})
	createGuest(t, repo, &models.Guest{Name: "Waiting", IsOnWaitlist: true})

	all, err := repo.List(ctx, repositories.GuestListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	yes := true
	waitlist, err := repo.List(ctx, repositories.GuestListFilter{Waitlist: &yes})
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, "Waiting", waitlist[0].Name)

	no := false
	mainList, err := repo.List(ctx, repositories.GuestListFilter{Waitlist: &no})
	require.NoError(t, err)
	require.Len(t, mainList, 1)
	assert.Equal(t, "Main", mainList[0].Name)
}

func TestGuestRepository_Update(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	guest := createGuest(t, repo, &models.Guest{Name: "Alice", Email: strPtr("alice@example.com")})

	var noEmail *string
	rows, err := repo.Update(ctx, guest.ID, map[string]interface{}{
		"status": models.GuestStatusAttending,
		"email":  noEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := repo.GetByID(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusAttending, got.Status)
	assert.Nil(t, got.Email)
	assert.Equal(t, "Alice", got.Name)

	rows, err = repo.Update(ctx, uuid.New(), map[string]interface{}{"name": "Ghost"})
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestGuestRepository_UpdateWaitlist(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	a := createGuest(t, repo, &models.Guest{Name: "A"})
	b := createGuest(t, repo, &models.Guest{Name: "B"})

	rows, err := repo.UpdateWaitlist(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	got, err := repo.GetByIDs(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, g := range got {
		assert.True(t, g.IsOnWaitlist)
	}

	rows, err = repo.UpdateWaitlist(ctx, nil, false)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestGuestRepository_DeleteClearsMembers(t *testing.T) {
	repo := NewGuestRepository(newTestDB(t))
	ctx := context.Background()

	headID := uuid.New()
	head := createGuest(t, repo, &models.Guest{ID: headID, Name: "Head", FamilyHeadID: &headID})
	kid := createGuest(t, repo, &models.Guest{Name: "Kid", FamilyHeadID: &head.ID})

	rows, err := repo.Delete(ctx, head.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.GetByID(ctx, head.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	got, err := repo.GetByID(ctx, kid.ID)
	require.NoError(t, err)
	assert.Nil(t, got.FamilyHeadID)

	rows, err = repo.Delete(ctx, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, rows)
}
