package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_RoundTripsEvents(t *testing.T) {
	var (
		gotType    EventType
		gotPayload []byte
	)
	c := NewLocal(func(_ context.Context, eventType EventType, payload []byte) error {
		gotType = eventType
		gotPayload = payload
		return nil
	})

	sent := RosterEvent{
		Type:        EventPlayerJoined,
		MatchID:     "m1",
		Sport:       "Pádel",
		StartsAt:    time.Date(2026, 10, 17, 19, 30, 0, 0, time.UTC),
		TotalSlots:  4,
		FilledSlots: 4,
		IsFull:      true,
		UserID:      "u1",
		Role:        "signed_up",
	}
	require.NoError(t, c.SendMessage(context.Background(), EventPlayerJoined, sent))
	assert.Equal(t, EventPlayerJoined, gotType)

	var received RosterEvent
	require.NoError(t, c.ProcessMessage(gotPayload, &received))
	assert.Equal(t, sent.MatchID, received.MatchID)
	assert.True(t, received.IsFull)
	assert.True(t, sent.StartsAt.Equal(received.StartsAt))
}

func TestLocalClient_NilHandlerDrops(t *testing.T) {
	c := NewLocal(nil)
	assert.NoError(t, c.SendMessage(context.Background(), EventMatchCreated, RosterEvent{MatchID: "m1"}))
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	var ev RosterEvent
	assert.Error(t, NewMock().ProcessMessage([]byte{0xc1}, &ev))
}
