package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	topic    *pubsub.Topic
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchCreated EventType = "match.created"
	EventPlayerJoined EventType = "player.joined"
	EventPlayerLeft   EventType = "player.left"
	EventMatchDeleted EventType = "match.deleted"
)

// EventTypeAttribute is the message attribute carrying the EventType.
const EventTypeAttribute = "event_type"

// RosterEvent is published after a committed roster change.
type RosterEvent struct {
	Type         EventType `msgpack:"type" json:"type"`
	MatchID      string    `msgpack:"match_id" json:"match_id"`
	OrganizerID  string    `msgpack:"organizer_id" json:"organizer_id"`
	Sport        string    `msgpack:"sport" json:"sport"`
	StartsAt     time.Time `msgpack:"starts_at" json:"starts_at"`
	Zone         string    `msgpack:"zone" json:"zone"`
	LocationText string    `msgpack:"location_text" json:"location_text"`
	TotalSlots   int       `msgpack:"total_slots" json:"total_slots"`
	FilledSlots  int       `msgpack:"filled_slots" json:"filled_slots"`
	IsFull       bool      `msgpack:"is_full" json:"is_full"`
	// UserID and Role describe the player behind a join or leave.
	UserID string `msgpack:"user_id,omitempty" json:"user_id,omitempty"`
	Role   string `msgpack:"role,omitempty" json:"role,omitempty"`
	// AffectedUserIDs are the players that were on a deleted match.
	AffectedUserIDs []string  `msgpack:"affected_user_ids,omitempty" json:"affected_user_ids,omitempty"`
	OccurredAt      time.Time `msgpack:"occurred_at" json:"occurred_at"`
}
