package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/pubsub"
)

// Notifier defines a high-level interface for announcing roster events to the community.
type Notifier interface {
	// A match was published and is open for sign-ups.
	SendNewMatchNotification(event pubsub.RosterEvent, dryRun bool) error
	// The last signed_up slot of a match was taken.
	SendMatchFullNotification(event pubsub.RosterEvent, dryRun bool) error
	// The organizer deleted a match.
	SendMatchCanceledNotification(event pubsub.RosterEvent, dryRun bool) error
}

// Noop logs announcements instead of sending them. It is used when no provider is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendNewMatchNotification(event pubsub.RosterEvent, _ bool) error {
	log.Debug("Notifications disabled, skipping new match announcement", "matchID", event.MatchID)
	return nil
}

func (Noop) SendMatchFullNotification(event pubsub.RosterEvent, _ bool) error {
	log.Debug("Notifications disabled, skipping match full announcement", "matchID", event.MatchID)
	return nil
}

func (Noop) SendMatchCanceledNotification(event pubsub.RosterEvent, _ bool) error {
	log.Debug("Notifications disabled, skipping canceled match announcement", "matchID", event.MatchID)
	return nil
}
