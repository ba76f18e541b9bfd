package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/notifier"
	"github.com/juegoya/juegoya/internal/pubsub"
	"github.com/juegoya/juegoya/internal/sport"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	baseURL   string
	metrics   metrics.Metrics
	loc       *time.Location
}

// NewNotifier creates a new Notifier. baseURL is the public site used for match links.
func NewNotifier(token, channelID, baseURL string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, baseURL, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID, baseURL string, metrics metrics.Metrics) *Notifier {
	loc, err := time.LoadLocation("America/Montevideo")
	if err != nil {
		log.Warn("Could not load local time zone, using UTC for announcements", "error", err)
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		baseURL:   strings.TrimRight(baseURL, "/"),
		metrics:   metrics,
		loc:       loc,
	}
}

// post sends message to the announcement channel, or only logs it on a dry run.
func (s *Notifier) post(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would post announcement", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to post announcement", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post announcement: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Posted announcement", "channel", channelID, "timestamp", timestamp)
	return nil
}

func (s *Notifier) SendNewMatchNotification(event pubsub.RosterEvent, dryRun bool) error {
	return s.post(s.formatNewMatch(event), dryRun)
}

func (s *Notifier) SendMatchFullNotification(event pubsub.RosterEvent, dryRun bool) error {
	return s.post(s.formatMatchFull(event), dryRun)
}

func (s *Notifier) SendMatchCanceledNotification(event pubsub.RosterEvent, dryRun bool) error {
	return s.post(s.formatMatchCanceled(event), dryRun)
}

// formatNewMatch creates the announcement for a newly published match using Block Kit.
func (s *Notifier) formatNewMatch(event pubsub.RosterEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s ¡Nuevo partido de %s!", emoji(event.Sport), event.Sport), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, s.detailsBlock(event))

	free := event.TotalSlots - event.FilledSlots
	contextElements := []slack.MixedElement{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Quedan %d de %d lugares. <%s|Anotate acá>", free, event.TotalSlots, s.matchURL(event.MatchID)), false, false),
	}
	blocks = append(blocks, slack.NewContextBlock("", contextElements...))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatMatchFull(event pubsub.RosterEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("✅ Partido de %s completo", event.Sport), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, s.detailsBlock(event))
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Los %d lugares están ocupados. Todavía podés <%s|sumarte como suplente>.", event.TotalSlots, s.matchURL(event.MatchID)), false, false),
	))

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatMatchCanceled(event pubsub.RosterEvent) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("❌ Se canceló el partido de %s", event.Sport), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, s.detailsBlock(event))

	if n := len(event.AffectedUserIDs); n > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Había %d jugadores anotados.", n), true, false),
		))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) detailsBlock(event pubsub.RosterEvent) *slack.SectionBlock {
	where := event.LocationText
	if event.Zone != "" {
		where = fmt.Sprintf("%s (%s)", event.LocationText, event.Zone)
	}
	detailsText := fmt.Sprintf("Cuándo: %s\nDónde: %s", formatWhen(event.StartsAt.In(s.loc)), where)
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil)
}

func (s *Notifier) matchURL(matchID string) string {
	return s.baseURL + "/matches/" + matchID
}

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// formatWhen renders t as "sábado 17/10, 20:30".
func formatWhen(t time.Time) string {
	return fmt.Sprintf("%s %s", weekdays[t.Weekday()], t.Format("02/01, 15:04"))
}

func emoji(s string) string {
	switch sport.Sport(s) {
	case sport.Football:
		return "⚽"
	case sport.Padel, sport.Tennis:
		return "🎾"
	}
	return "🏅"
}
