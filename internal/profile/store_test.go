package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/juegoya/juegoya/internal/database"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/juegoya/juegoya/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) profile.Store {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)
	clock := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	return profile.NewWithClock(db, func() time.Time { return clock })
}

func TestStore_UpsertAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "u1")
	require.ErrorIs(t, err, profile.ErrNotFound)

	saved, err := store.Upsert(ctx, "u1", profile.UpsertInput{
		FirstName: "Ana", LastName: "Pérez", WhatsApp: "099123456", Zone: "Pocitos",
		Sports: []string{"Pádel"}, PadelCategory: strPtr("5ta"),
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.ID)
	assert.True(t, profile.IsComplete(saved))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pocitos", got.Zone)
	assert.Equal(t, []sport.Sport{sport.Padel}, got.Sports)
	assert.Equal(t, "5ta", got.PadelCategory)

	// A second upsert replaces the editable fields.
	_, err = store.Upsert(ctx, "u1", profile.UpsertInput{
		FirstName: "Ana", LastName: "Pérez", WhatsApp: "099123456",
		Sports: []string{"Tenis"}, TennisLevel: intPtr(2),
	})
	require.NoError(t, err)
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Zone)
	assert.Empty(t, got.PadelCategory)
	assert.Equal(t, 2, got.TennisLevel)
}

func TestStore_UpsertRejectsInvalidInput(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "u1", profile.UpsertInput{FirstName: "Ana"})
	require.ErrorIs(t, err, validation.ErrInvalid)

	_, err = store.Get(ctx, "u1")
	assert.ErrorIs(t, err, profile.ErrNotFound, "nothing is written when validation fails")
}
