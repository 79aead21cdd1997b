package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
	"github.com/mauv0809/finding-friends/internal/tracker"
)

const maxImportBytes = 10 << 20

// DayResponse is a game day plus what a client needs to render it.
type DayResponse struct {
	Date           string         `json:"date"`
	Players        []string       `json:"players"`
	Rounds         []round.Result `json:"rounds"`
	CurrentRound   int            `json:"currentRound"`
	Roster         []string       `json:"roster"`
	CanCreateRound bool           `json:"canCreateRound"`
}

// RecordRoundRequest is a round config plus an optional roster saved with it.
type RecordRoundRequest struct {
	round.Config
	Roster []string `json:"roster,omitempty"`
}

// StatsResponse is a ranking with the heading it is shown under.
type StatsResponse struct {
	View  string `json:"view"`
	Label string `json:"label"`
	stats.Report
}

type rosterRequest struct {
	Players []string `json:"players"`
}

func ListDaysHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, tr.Overview())
	}
}

func GetDayHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := dateParam(tr, r)
		day, err := tr.Day(date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, DayResponse{
			Date:           date,
			Players:        day.Players,
			Rounds:         day.Rounds,
			CurrentRound:   day.CurrentRound,
			Roster:         tr.Roster(date),
			CanCreateRound: tracker.CanCreateRound(date, tr.Today()),
		})
	}
}

func SetRosterHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rosterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		day, err := tr.SetRoster(dateParam(tr, r), req.Players)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, day)
	}
}

func RecordRoundHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := RecordRoundRequest{Config: round.Config{Mode: round.ModeNormal, Bid: round.DefaultBid}}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		date := dateParam(tr, r)
		log.Debug("Received round", "date", date, "host", req.Host, "mode", req.Mode)

		result, err := tr.RecordRound(date, req.Config, req.Roster, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func StatsHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := chi.URLParam(r, "view")
		if view == "" {
			view = chi.URLParam(r, "date")
		}
		view = resolveDate(tr, view)
		writeJSON(w, http.StatusOK, StatsResponse{
			View:   view,
			Label:  tr.DateLabel(view),
			Report: tr.Stats(view),
		})
	}
}

func AnnounceHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := resolveDate(tr, chi.URLParam(r, "view"))
		if err := tr.AnnounceLeaderboard(view, IsDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func ScoreboardHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := dateParam(tr, r)
		if date == gameday.AllTime {
			writeError(w, gameday.ErrReservedDate)
			return
		}
		writeJSON(w, http.StatusOK, tr.Scoreboard(date))
	}
}

func RoundDetailsHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := dateParam(tr, r)
		if date == gameday.AllTime {
			writeError(w, gameday.ErrReservedDate)
			return
		}
		writeJSON(w, http.StatusOK, tr.RoundDetails(date))
	}
}

func ExportHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := tr.Export()
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}

func ImportHandler(tr *tracker.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
			return
		}
		if err := tr.Import(body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, tr.Overview())
	}
}
