package pubsub

import (
	"testing"
	"time"

	"github.com/juegoya/juegoya/internal/match"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func testMatch() *match.Match {
	return &match.Match{
		ID:           "m1",
		OrganizerID:  "org",
		Sport:        sport.Tennis,
		StartsAt:     testNow.Add(24 * time.Hour),
		Zone:         "Pocitos",
		LocationText: "Club",
		TotalSlots:   2,
		Status:       match.StatusOpen,
	}
}

func TestPlayerJoined(t *testing.T) {
	res := &match.JoinResult{
		Role:   match.RoleSignedUp,
		Match:  *testMatch(),
		Roster: match.Roster{FilledSlots: 2, TotalSlots: 2, IsFull: true},
	}
	ev := PlayerJoined(res, "u2", testNow)
	assert.Equal(t, EventPlayerJoined, ev.Type)
	assert.Equal(t, "u2", ev.UserID)
	assert.Equal(t, "signed_up", ev.Role)
	assert.Equal(t, "Tenis", ev.Sport)
	assert.True(t, ev.IsFull)
	assert.Equal(t, 2, ev.FilledSlots)
}

func TestMatchDeleted(t *testing.T) {
	affected := []match.Player{
		{UserID: "u1", Role: match.RoleSignedUp},
		{UserID: "u2", Role: match.RoleSubstitute},
	}
	ev := MatchDeleted(testMatch(), affected, testNow)
	assert.Equal(t, EventMatchDeleted, ev.Type)
	assert.Equal(t, []string{"u1", "u2"}, ev.AffectedUserIDs)
	assert.Equal(t, 1, ev.FilledSlots)
	assert.Equal(t, "org", ev.OrganizerID)
}
