package pubsub

import (
	"time"

	"github.com/juegoya/juegoya/internal/match"
)

func baseEvent(eventType EventType, m *match.Match, now time.Time) RosterEvent {
	return RosterEvent{
		Type:         eventType,
		MatchID:      m.ID,
		OrganizerID:  m.OrganizerID,
		Sport:        string(m.Sport),
		StartsAt:     m.StartsAt,
		Zone:         m.Zone,
		LocationText: m.LocationText,
		TotalSlots:   m.TotalSlots,
		OccurredAt:   now,
	}
}

// MatchCreated describes a newly published match.
func MatchCreated(m *match.Match, now time.Time) RosterEvent {
	return baseEvent(EventMatchCreated, m, now)
}

// PlayerJoined describes a committed join and the roster it left behind.
func PlayerJoined(res *match.JoinResult, userID string, now time.Time) RosterEvent {
	ev := baseEvent(EventPlayerJoined, &res.Match, now)
	ev.UserID = userID
	ev.Role = string(res.Role)
	ev.FilledSlots = res.Roster.FilledSlots
	ev.IsFull = res.Roster.IsFull
	return ev
}

// PlayerLeft describes a canceled participation.
func PlayerLeft(matchID string, p *match.Player, now time.Time) RosterEvent {
	return RosterEvent{
		Type:       EventPlayerLeft,
		MatchID:    matchID,
		UserID:     p.UserID,
		Role:       string(p.Role),
		OccurredAt: now,
	}
}

// MatchDeleted describes a deleted match and the players that were on it.
func MatchDeleted(m *match.Match, affected []match.Player, now time.Time) RosterEvent {
	ev := baseEvent(EventMatchDeleted, m, now)
	for _, p := range affected {
		ev.AffectedUserIDs = append(ev.AffectedUserIDs, p.UserID)
		if p.Role == match.RoleSignedUp {
			ev.FilledSlots++
		}
	}
	return ev
}
