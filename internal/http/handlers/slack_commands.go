package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/tracker"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithFormatted writes a notifier-formatted message back to Slack.
func respondWithFormatted(w http.ResponseWriter, msg any, err error) {
	if err != nil {
		http.Error(w, "Failed to format response", http.StatusInternalServerError)
		log.Error("Failed to format slack response", "error", err)
		return
	}
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	respondWithSlackMsg(w, slackMsg)
}

// parsePlayerStatsText splits "<name> [all-time]" into the name and the view.
// Without the suffix the view is today.
func parsePlayerStatsText(text string) (playerName string, view string) {
	parts := strings.Fields(text)
	view = todayAlias
	if len(parts) > 1 && strings.EqualFold(parts[len(parts)-1], gameday.AllTime) {
		view = gameday.AllTime
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " "), view
}

// parseLeaderboardText reads the optional view argument of /leaderboard.
func parseLeaderboardText(text string) string {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, gameday.AllTime) {
		return gameday.AllTime
	}
	return text
}

func LeaderboardCommandHandler(tr *tracker.Tracker, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		view := resolveDate(tr, parseLeaderboardText(r.FormValue("text")))
		log.Info("Received leaderboard command", "view", view)

		msg, err := notifier.FormatLeaderboardResponse(tr.DateLabel(view), tr.Stats(view))
		respondWithFormatted(w, msg, err)
	}
}

func PlayerStatsCommandHandler(tr *tracker.Tracker, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		playerName, view := parsePlayerStatsText(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		view = resolveDate(tr, view)

		log.Info("Received player stats command", "player", playerName, "view", view)
		entry, err := tr.PlayerStats(playerName, view)
		var msg any
		switch {
		case errors.Is(err, tracker.ErrPlayerNotFound):
			log.Warn("Could not find player stats", "player", playerName, "error", err)
			msg, err = notifier.FormatPlayerNotFoundResponse(playerName)
		case err != nil:
			http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
			log.Error("Failed to get player stats", "error", err)
			return
		default:
			msg, err = notifier.FormatPlayerStatsResponse(tr.DateLabel(view), entry)
		}
		respondWithFormatted(w, msg, err)
	}
}
