package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/pubsub"
)

// ErrUnknownEvent is returned for events of a type the processor does not handle.
var ErrUnknownEvent = errors.New("unknown event type")

// New creates a new Processor.
func New(notifier Notifier, metrics metrics.Metrics) *Processor {
	return &Processor{
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessEvent handles one delivered roster event.
func (p *Processor) ProcessEvent(ctx context.Context, event pubsub.RosterEvent, dryRun bool) error {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveEventProcessingDuration(time.Since(startTime).Seconds())
	}()

	log.Info("Processing roster event", "type", event.Type, "matchID", event.MatchID, "dryRun", dryRun)
	switch event.Type {
	case pubsub.EventMatchCreated:
		return p.notifier.SendNewMatchNotification(event, dryRun)
	case pubsub.EventPlayerJoined:
		if !filledLastSlot(event) {
			log.Debug("Join did not fill the match", "matchID", event.MatchID, "filled", event.FilledSlots, "total", event.TotalSlots)
			return nil
		}
		log.Info("Match is now full", "matchID", event.MatchID)
		return p.notifier.SendMatchFullNotification(event, dryRun)
	case pubsub.EventPlayerLeft:
		log.Debug("Player left, nothing to announce", "matchID", event.MatchID, "userID", event.UserID)
		return nil
	case pubsub.EventMatchDeleted:
		return p.notifier.SendMatchCanceledNotification(event, dryRun)
	}
	return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
}

// Handle decodes a msgpack payload and processes it. It is a pubsub.Handler so a local
// client can deliver events in-process.
func (p *Processor) Handle(ctx context.Context, eventType pubsub.EventType, payload []byte) error {
	var event pubsub.RosterEvent
	if err := pubsub.Decode(payload, &event); err != nil {
		return err
	}
	if event.Type == "" {
		event.Type = eventType
	}
	return p.ProcessEvent(ctx, event, false)
}

// filledLastSlot reports whether the join took the final signed_up slot. Substitutes
// joining an already full match are not announced again.
func filledLastSlot(event pubsub.RosterEvent) bool {
	return event.Role == "signed_up" && event.IsFull && event.FilledSlots == event.TotalSlots
}
