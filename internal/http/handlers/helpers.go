package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/tracker"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// todayAlias can be used in place of a date key in URLs and commands.
const todayAlias = "today"

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// resolveDate maps the "today" alias to today's key.
func resolveDate(tr *tracker.Tracker, date string) string {
	if date == "" || date == todayAlias {
		return tr.Today()
	}
	return date
}

// dateParam reads the {date} URL parameter.
func dateParam(tr *tracker.Tracker, r *http.Request) string {
	return resolveDate(tr, chi.URLParam(r, "date"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, round.ErrInvalidRoundConfig),
		errors.Is(err, tracker.ErrInvalidRoster),
		errors.Is(err, gameday.ErrReservedDate):
		status = http.StatusBadRequest
	case errors.Is(err, tracker.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tracker.ErrRoundNotAllowed),
		errors.Is(err, gameday.ErrRoundOutOfOrder):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
