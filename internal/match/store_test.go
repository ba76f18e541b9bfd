package match_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/juegoya/juegoya/internal/database"
	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/profile"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type fixture struct {
	matches  match.Store
	profiles profile.Store
	clock    *testClock
}

func setupTestStore(t *testing.T) *fixture {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)
	clock := &testClock{t: now}
	return &fixture{
		matches:  match.NewWithClock(db, clock.Now),
		profiles: profile.NewWithClock(db, clock.Now),
		clock:    clock,
	}
}

func (f *fixture) footballer(t *testing.T, id string) {
	t.Helper()
	level := 3
	_, err := f.profiles.Upsert(context.Background(), id, profile.UpsertInput{
		FirstName: "Jugador", LastName: id, WhatsApp: "099123456", Zone: "Pocitos",
		Sports: []string{string(sport.Football)}, Level: &level,
	})
	require.NoError(t, err)
}

func (f *fixture) padelPlayer(t *testing.T, id, category string) {
	t.Helper()
	_, err := f.profiles.Upsert(context.Background(), id, profile.UpsertInput{
		FirstName: "Jugador", LastName: id, WhatsApp: "099123456",
		Sports: []string{string(sport.Padel)}, PadelCategory: &category,
	})
	require.NoError(t, err)
}

func (f *fixture) create(t *testing.T, organizer string, in match.CreateInput) *match.Match {
	t.Helper()
	m, err := f.matches.Create(context.Background(), organizer, in)
	require.NoError(t, err)
	return m
}

func footballInput(slots int) match.CreateInput {
	return match.CreateInput{
		Sport:        string(sport.Football),
		StartsAt:     time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC),
		LocationText: "Cancha del Parque",
		TotalSlots:   slots,
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")

	created := f.create(t, "org", footballInput(10))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Pocitos", created.Zone, "zone defaults to the organizer's")

	got, err := f.matches.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.StartsAt.Unix(), got.StartsAt.Unix())
	assert.Equal(t, sport.Football, got.Sport)
	assert.Equal(t, match.StatusOpen, got.Status)
	assert.Nil(t, got.PricePerPerson)

	_, err = f.matches.Get(ctx, "missing")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestStore_CreateRequiresCompleteProfile(t *testing.T) {
	f := setupTestStore(t)
	_, err := f.matches.Create(context.Background(), "nobody", footballInput(10))
	assert.ErrorIs(t, err, match.ErrProfileIncomplete)
}

// Ten players fill a five-a-side match, the eleventh is a substitute, and a player
// leaving does not promote the substitute.
func TestStore_FootballRosterScenario(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	m := f.create(t, "org", footballInput(10))

	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("p%02d", i)
		f.footballer(t, id)
		f.clock.Set(now.Add(time.Duration(i) * time.Second))
		res, err := f.matches.Join(ctx, m.ID, id, false)
		require.NoError(t, err)
		assert.Equal(t, match.RoleSignedUp, res.Role, id)
		assert.Equal(t, i, res.Roster.FilledSlots)
	}

	f.footballer(t, "p11")
	res, err := f.matches.Join(ctx, m.ID, "p11", false)
	require.NoError(t, err)
	assert.Equal(t, match.RoleSubstitute, res.Role)
	assert.True(t, res.Roster.IsFull)

	_, err = f.matches.Join(ctx, m.ID, "p11", false)
	assert.ErrorIs(t, err, match.ErrAlreadyJoined)

	left, err := f.matches.Leave(ctx, m.ID, "p03")
	require.NoError(t, err)
	require.NotNil(t, left.CanceledAt)

	rows, err := f.matches.Roster(ctx, m.ID)
	require.NoError(t, err)
	roster := match.Summarize(rows, m.TotalSlots)
	assert.Equal(t, 9, roster.FilledSlots)
	assert.False(t, roster.IsFull)
	assert.Equal(t, []string{"p11"}, userIDs(roster.Substitutes), "substitutes are not promoted")
	assert.Len(t, rows, 11, "canceled rows are kept")

	_, err = f.matches.Leave(ctx, m.ID, "p03")
	assert.ErrorIs(t, err, match.ErrNotJoined)

	f.footballer(t, "p12")
	res, err = f.matches.Join(ctx, m.ID, "p12", false)
	require.NoError(t, err)
	assert.Equal(t, match.RoleSignedUp, res.Role, "the freed slot goes to the next joiner")
}

func TestStore_RejoinAfterLeaving(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	m := f.create(t, "org", footballInput(2))

	_, err := f.matches.Join(ctx, m.ID, "u1", true)
	require.NoError(t, err)
	_, err = f.matches.Leave(ctx, m.ID, "u1")
	require.NoError(t, err)

	res, err := f.matches.Join(ctx, m.ID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, match.RoleSignedUp, res.Role)

	rows, err := f.matches.Roster(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStore_ConcurrentJoinsNeverOverfill(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	m := f.create(t, "org", footballInput(3))

	const joiners = 8
	for i := 0; i < joiners; i++ {
		f.footballer(t, fmt.Sprintf("u%d", i))
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < joiners; i++ {
		id := fmt.Sprintf("u%d", i)
		g.Go(func() error {
			_, err := f.matches.Join(gctx, m.ID, id, false)
			return err
		})
	}
	require.NoError(t, g.Wait())

	rows, err := f.matches.Roster(ctx, m.ID)
	require.NoError(t, err)
	roster := match.Summarize(rows, m.TotalSlots)
	assert.Equal(t, 3, roster.FilledSlots)
	assert.Len(t, roster.Substitutes, joiners-3)
}

func TestStore_PadelLevelGate(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.padelPlayer(t, "org", "6ta")
	in := match.CreateInput{
		Sport:        string(sport.Padel),
		StartsAt:     time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC),
		Zone:         "Carrasco",
		LocationText: "Club de Pádel",
		TotalSlots:   4,
		PadelLevel:   "6ta",
	}
	m := f.create(t, "org", in)

	f.padelPlayer(t, "close", "5ta")
	_, err := f.matches.Join(ctx, m.ID, "close", false)
	assert.NoError(t, err)

	f.padelPlayer(t, "far", "4ta")
	_, err = f.matches.Join(ctx, m.ID, "far", false)
	assert.ErrorIs(t, err, match.ErrLevelMismatch)

	f.footballer(t, "no-padel")
	_, err = f.matches.Join(ctx, m.ID, "no-padel", false)
	assert.ErrorIs(t, err, match.ErrSportProfileIncomplete)
}

func TestStore_Confirm(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	f.footballer(t, "sub")
	m := f.create(t, "org", footballInput(1))

	_, err := f.matches.Join(ctx, m.ID, "u1", false)
	require.NoError(t, err)
	_, err = f.matches.Join(ctx, m.ID, "sub", false)
	require.NoError(t, err)

	_, err = f.matches.Confirm(ctx, m.ID, "u1")
	assert.ErrorIs(t, err, match.ErrConfirmUnavailable)

	f.clock.Set(m.StartsAt.Add(-time.Hour))
	first, err := f.matches.Confirm(ctx, m.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, first.ConfirmedAt)

	f.clock.Set(m.StartsAt.Add(-30 * time.Minute))
	second, err := f.matches.Confirm(ctx, m.ID, "u1")
	require.NoError(t, err)
	assert.True(t, first.ConfirmedAt.Equal(*second.ConfirmedAt), "confirming twice keeps the first time")

	_, err = f.matches.Confirm(ctx, m.ID, "sub")
	assert.ErrorIs(t, err, match.ErrNotSignedUp)

	f.clock.Set(m.StartsAt)
	_, err = f.matches.Confirm(ctx, m.ID, "u1")
	assert.ErrorIs(t, err, match.ErrUnavailable)
}

func TestStore_Delete(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	m := f.create(t, "org", footballInput(4))
	_, err := f.matches.Join(ctx, m.ID, "u1", false)
	require.NoError(t, err)

	_, _, err = f.matches.Delete(ctx, m.ID, "u1")
	assert.ErrorIs(t, err, match.ErrForbidden)

	deleted, affected, err := f.matches.Delete(ctx, m.ID, "org")
	require.NoError(t, err)
	assert.Equal(t, m.ID, deleted.ID)
	assert.Equal(t, []string{"u1"}, userIDs(affected))

	_, err = f.matches.Get(ctx, m.ID)
	assert.ErrorIs(t, err, match.ErrNotFound)
	rows, err := f.matches.Roster(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, _, err = f.matches.Delete(ctx, m.ID, "org")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestStore_PastMatchIsClosed(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	m := f.create(t, "org", footballInput(4))
	_, err := f.matches.Join(ctx, m.ID, "u1", false)
	require.NoError(t, err)

	f.clock.Set(m.StartsAt.Add(time.Minute))
	_, err = f.matches.Leave(ctx, m.ID, "u1")
	assert.ErrorIs(t, err, match.ErrUnavailable)

	f.footballer(t, "late")
	_, err = f.matches.Join(ctx, m.ID, "late", false)
	assert.ErrorIs(t, err, match.ErrUnavailable)

	items, err := f.matches.ListOpen(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_ListOpen(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	later := footballInput(2)
	later.StartsAt = later.StartsAt.Add(24 * time.Hour)
	second := f.create(t, "org", later)
	first := f.create(t, "org", footballInput(1))
	_, err := f.matches.Join(ctx, first.ID, "u1", false)
	require.NoError(t, err)

	items, err := f.matches.ListOpen(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID, "soonest first")
	assert.Equal(t, "Jugador org", items[0].OrganizerName)
	assert.Equal(t, 1, items[0].FilledSlots)
	assert.True(t, items[0].IsFull)
	assert.Equal(t, second.ID, items[1].ID)
	assert.False(t, items[1].IsFull)

	items, err = f.matches.ListOpen(ctx, sport.Tennis)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStore_ListOpenDropsStartedMatches(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	m := f.create(t, "org", footballInput(10))

	f.clock.Set(m.StartsAt.Add(-time.Second))
	items, err := f.matches.ListOpen(ctx, "")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	f.clock.Set(m.StartsAt)
	items, err = f.matches.ListOpen(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items, "a match that starts now no longer accepts players")
}

func TestStore_ListForUser(t *testing.T) {
	f := setupTestStore(t)
	ctx := context.Background()
	f.footballer(t, "org")
	f.footballer(t, "u1")
	joined := f.create(t, "org", footballInput(4))
	left := f.create(t, "org", footballInput(4))
	_, err := f.matches.Join(ctx, joined.ID, "u1", false)
	require.NoError(t, err)
	_, err = f.matches.Join(ctx, left.ID, "u1", false)
	require.NoError(t, err)
	_, err = f.matches.Leave(ctx, left.ID, "u1")
	require.NoError(t, err)

	participating, organized, err := f.matches.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{joined.ID}, matchIDs(participating))
	assert.Empty(t, organized)

	_, organized, err = f.matches.ListForUser(ctx, "org")
	require.NoError(t, err)
	assert.Len(t, organized, 2)
}
