package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juegoya/juegoya/internal/metrics"
	"github.com/juegoya/juegoya/internal/pubsub"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testEvent() pubsub.RosterEvent {
	return pubsub.RosterEvent{
		Type:         pubsub.EventMatchCreated,
		MatchID:      "m1",
		Sport:        "Pádel",
		StartsAt:     time.Date(2026, 10, 17, 20, 30, 0, 0, time.UTC),
		Zone:         "Carrasco",
		LocationText: "Club de Pádel",
		TotalSlots:   4,
		FilledSlots:  1,
	}
}

func TestPost_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", "https://juegoya.app", metrics)

	message := slackapi.NewBlockMessage()
	err := notifier.post(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestPost_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", "https://juegoya.app", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hola", false, false), nil, nil))
	err := notifier.post(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestPost_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", "https://juegoya.app", metrics)

	err := notifier.post(slackapi.NewBlockMessage(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestSendNotifications_CallSender(t *testing.T) {
	calls := 0
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			calls++
			return "C123", "ts123", nil
		},
	}
	notifier := NewNotifierWithAPI(api, "C123", "https://juegoya.app", metrics.NewMock())

	require.NoError(t, notifier.SendNewMatchNotification(testEvent(), false))
	require.NoError(t, notifier.SendMatchFullNotification(testEvent(), false))
	require.NoError(t, notifier.SendMatchCanceledNotification(testEvent(), false))
	assert.Equal(t, 3, calls)
}

func TestFormatNewMatch(t *testing.T) {
	client := &Notifier{channelID: "C123", baseURL: "https://juegoya.app", loc: time.UTC}
	msg := client.formatNewMatch(testEvent())
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "Block 0 should be a HeaderBlock")
	assert.Equal(t, "🎾 ¡Nuevo partido de Pádel!", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Block 1 should be a SectionBlock")
	assert.Equal(t, "Cuándo: sábado 17/10, 20:30\nDónde: Club de Pádel (Carrasco)", details.Text.Text)

	ctxBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok, "Block 2 should be a ContextBlock")
	require.Len(t, ctxBlock.ContextElements.Elements, 1)
	text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Quedan 3 de 4 lugares. <https://juegoya.app/matches/m1|Anotate acá>", text.Text)
}

func TestFormatMatchCanceled(t *testing.T) {
	client := &Notifier{channelID: "C123", loc: time.UTC}

	event := testEvent()
	event.Type = pubsub.EventMatchDeleted
	msg := client.formatMatchCanceled(event)
	assert.Len(t, msg.Blocks.BlockSet, 2, "no context block without affected players")

	event.AffectedUserIDs = []string{"u1", "u2"}
	msg = client.formatMatchCanceled(event)
	require.Len(t, msg.Blocks.BlockSet, 3)
	ctxBlock := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	assert.Equal(t, "Había 2 jugadores anotados.", ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject).Text)
}

func TestFormatWhen(t *testing.T) {
	loc := time.FixedZone("UYT", -3*60*60)
	assert.Equal(t, "sábado 17/10, 20:30", formatWhen(time.Date(2026, 10, 17, 23, 30, 0, 0, time.UTC).In(loc)))
}
