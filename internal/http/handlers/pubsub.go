package handlers

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/juegoya/juegoya/internal/processor"
	"github.com/juegoya/juegoya/internal/pubsub"
)

// pushMessage is the JSON wrapper Pub/Sub push subscriptions POST.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}

// RosterEventsHandler consumes pushed roster events. The subscription must send pushToken
// as ?token=. Malformed messages are acknowledged with 400 so Pub/Sub does not redeliver
// them; processing failures return 500 to get a retry.
func RosterEventsHandler(proc *processor.Processor, pubsubClient pubsub.PubSubClient, pushToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pushToken == "" || subtle.ConstantTimeCompare([]byte(r.URL.Query().Get("token")), []byte(pushToken)) != 1 {
			log.Warn("Rejected push with invalid token")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received roster event message", "body", string(bodyBytes))

		var pubsubMsg pushMessage
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.RosterEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		if event.Type == "" {
			event.Type = pubsub.EventType(pubsubMsg.Message.Attributes[pubsub.EventTypeAttribute])
		}

		err = proc.ProcessEvent(r.Context(), event, IsDryRunFromContext(r))
		if errors.Is(err, processor.ErrUnknownEvent) {
			log.Warn("Dropping roster event of unknown type", "messageID", pubsubMsg.Message.MessageID, "type", event.Type)
			http.Error(w, "Unknown event type", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Error("Failed to process roster event", "error", err, "messageID", pubsubMsg.Message.MessageID, "type", event.Type)
			http.Error(w, "Failed to process event", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
