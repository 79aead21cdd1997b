package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/finding-friends/internal/pubsub"
	"github.com/mauv0809/finding-friends/internal/tracker"
)

// RoundRecordedHandler is the push endpoint of the round-recorded subscription. A non-2xx
// reply makes Pub/Sub redeliver, so notification failures return 500.
func RoundRecordedHandler(tr *tracker.Tracker, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received round recorded message", "body", string(bodyBytes))

		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"`
			} `json:"message"`
		}

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

		event := tracker.RoundRecordedEvent{}
		decode := pubsub.Decode
		if pubsubClient != nil {
			decode = pubsubClient.ProcessMessage
		}
		if err := decode(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		event.DryRun = event.DryRun || IsDryRunFromContext(r)

		if err := tr.NotifyRoundRecorded(event); err != nil {
			log.Error("Failed to notify round result", "error", err, "id", event.ID)
			http.Error(w, "Failed to notify", http.StatusInternalServerError)
			return
		}
		log.Info("Round result notified", "id", event.ID, "date", event.Date, "round", event.Result.Round)
		w.Write([]byte("OK"))
	}
}
