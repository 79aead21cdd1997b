package stats

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mauv0809/finding-friends/internal/round"
)

// BuildScoreboard lays out a day's rounds as a score matrix, best total first.
func BuildScoreboard(rounds []round.Result) Scoreboard {
	board := Scoreboard{Rounds: make([]int, 0, len(rounds)), Rows: []ScoreboardRow{}}
	index := make(map[string]int)
	for _, r := range rounds {
		board.Rounds = append(board.Rounds, r.Round)
		for _, p := range r.Players {
			if _, ok := index[p]; !ok {
				index[p] = len(board.Rows)
				board.Rows = append(board.Rows, ScoreboardRow{Player: p, Cells: make([]*int, len(rounds))})
			}
		}
	}
	for col, r := range rounds {
		for _, p := range r.Players {
			row := &board.Rows[index[p]]
			points := r.Scores.Get(p)
			row.Cells[col] = &points
			row.Total += points
		}
	}
	slices.SortFunc(board.Rows, func(a, b ScoreboardRow) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Player, b.Player)
	})
	return board
}

// Details summarises each round in log order.
func Details(rounds []round.Result) []RoundDetail {
	details := make([]RoundDetail, 0, len(rounds))
	for _, r := range rounds {
		d := RoundDetail{
			Round:         r.Round,
			Host:          r.Host,
			Friends:       append([]string{}, r.Friends...),
			Bid:           r.Bid,
			OpponentScore: r.OpponentScore,
			Winner:        r.Winner,
			Scores:        []round.ScoreEntry{},
		}
		for _, e := range r.Scores {
			if e.Points > 0 {
				d.Scores = append(d.Scores, e)
			}
		}
		details = append(details, d)
	}
	return details
}
