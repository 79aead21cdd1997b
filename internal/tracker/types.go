package tracker

import (
	"errors"

	"github.com/mauv0809/finding-friends/internal/round"
)

var (
	// ErrRoundNotAllowed is returned when a round is submitted for a day other than today.
	ErrRoundNotAllowed = errors.New("rounds can only be recorded for today")
	ErrInvalidRoster   = errors.New("invalid roster")
	ErrPlayerNotFound  = errors.New("player not found")
)

// RoundRecordedEvent is published after a round is appended and saved.
type RoundRecordedEvent struct {
	ID     string       `msgpack:"id" json:"id"`
	Date   string       `msgpack:"date" json:"date"`
	Result round.Result `msgpack:"result" json:"result"`
	DryRun bool         `msgpack:"dry_run" json:"dryRun"`
}

// DayOverview lists the stored days alongside today's key.
type DayOverview struct {
	Today string   `json:"today"`
	Dates []string `json:"dates"`
}
