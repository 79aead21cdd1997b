package gameday

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/mauv0809/finding-friends/internal/round"
)

// AllTime is the reserved view key that merges every stored day. It is never stored.
const AllTime = "all-time"

// DateLayout formats calendar-day keys, e.g. "Wed Oct 14 2026".
const DateLayout = "Mon Jan 02 2006"

var (
	// ErrPersistence wraps every load or save failure of a Repository.
	ErrPersistence = errors.New("persistence failure")
	// ErrRoundOutOfOrder is returned when a result does not carry the day's next round number.
	ErrRoundOutOfOrder = errors.New("round number out of order")
	// ErrReservedDate is returned for operations on the all-time key.
	ErrReservedDate = errors.New("date key is reserved")
)

// DateKey returns the day key for t in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// GameDay is the roster and append-only round log of one calendar day.
type GameDay struct {
	Date         string         `json:"-"`
	Players      []string       `json:"players"`
	Rounds       []round.Result `json:"rounds"`
	CurrentRound int            `json:"currentRound"`
}

// New returns an empty day ready for its first round.
func New(date string) *GameDay {
	return &GameDay{
		Date:         date,
		Players:      []string{},
		Rounds:       []round.Result{},
		CurrentRound: 1,
	}
}

// Append adds a result to the log and advances the round counter. The result must carry
// the day's current round number.
func (g *GameDay) Append(result round.Result) error {
	if result.Round != g.CurrentRound {
		return fmt.Errorf("%w: day %q expects round %d, got %d", ErrRoundOutOfOrder, g.Date, g.CurrentRound, result.Round)
	}
	result.Normalize()
	g.Rounds = append(g.Rounds, result)
	g.CurrentRound++
	return nil
}

// Clone returns a deep copy so callers cannot reach into stored state.
func (g *GameDay) Clone() *GameDay {
	c := &GameDay{
		Date:         g.Date,
		Players:      slices.Clone(g.Players),
		Rounds:       make([]round.Result, len(g.Rounds)),
		CurrentRound: g.CurrentRound,
	}
	if c.Players == nil {
		c.Players = []string{}
	}
	for i, r := range g.Rounds {
		r.Players = slices.Clone(r.Players)
		r.Friends = slices.Clone(r.Friends)
		r.Scores = slices.Clone(r.Scores)
		r.Normalize()
		c.Rounds[i] = r
	}
	return c
}

func (g *GameDay) normalize() {
	if g.Players == nil {
		g.Players = []string{}
	}
	if g.Rounds == nil {
		g.Rounds = []round.Result{}
	}
	for i := range g.Rounds {
		g.Rounds[i].Normalize()
	}
	if g.CurrentRound < 1 {
		g.CurrentRound = len(g.Rounds) + 1
	}
}

// Validate checks the roster and the round log of a day. Rounds must be numbered 1..n in
// log order and CurrentRound must be n+1. The error unwraps to round.ErrInvalidRoundConfig.
func (g *GameDay) Validate() error {
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	seen := make(map[string]bool, len(g.Players))
	for _, p := range g.Players {
		switch {
		case p == "":
			add("players: empty name")
		case seen[p]:
			add("players: %q listed twice", p)
		}
		seen[p] = true
	}

	for i, r := range g.Rounds {
		if r.Round != i+1 {
			add("rounds[%d]: expected round %d, got %d", i, i+1, r.Round)
		}
		var verr *round.ValidationError
		if err := round.ValidateResult(r); errors.As(err, &verr) {
			for _, v := range verr.Violations {
				add("round %d: %s", r.Round, v)
			}
		}
	}
	if g.CurrentRound != len(g.Rounds)+1 {
		add("currentRound: expected %d, got %d", len(g.Rounds)+1, g.CurrentRound)
	}

	if len(violations) > 0 {
		return &round.ValidationError{Violations: violations}
	}
	return nil
}

// State is every stored game day keyed by date.
type State map[string]*GameDay

// GetOrCreate returns the day for date, creating an empty one on first reference.
func (s State) GetOrCreate(date string) (*GameDay, error) {
	if date == AllTime {
		return nil, ErrReservedDate
	}
	if day, ok := s[date]; ok {
		return day, nil
	}
	day := New(date)
	s[date] = day
	return day, nil
}

// Clone deep-copies the state.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, d := range s {
		out[k] = d.Clone()
	}
	return out
}

// Dates lists stored day keys newest first. Keys that do not parse as dates sort last.
func (s State) Dates() []string {
	dates := make([]string, 0, len(s))
	for k := range s {
		dates = append(dates, k)
	}
	sort.Slice(dates, func(i, j int) bool {
		ti, errI := time.Parse(DateLayout, dates[i])
		tj, errJ := time.Parse(DateLayout, dates[j])
		switch {
		case errI == nil && errJ == nil:
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
			return dates[i] < dates[j]
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return dates[i] < dates[j]
		}
	})
	return dates
}

// Validate checks every day of the state, reporting all violations prefixed with their date.
func (s State) Validate() error {
	var violations []string
	for _, date := range s.Dates() {
		if date == AllTime {
			return fmt.Errorf("%w: %q", ErrReservedDate, AllTime)
		}
		var verr *round.ValidationError
		if err := s[date].Validate(); errors.As(err, &verr) {
			for _, v := range verr.Violations {
				violations = append(violations, date+": "+v)
			}
		}
	}
	if len(violations) > 0 {
		return &round.ValidationError{Violations: violations}
	}
	return nil
}

// Repository persists the whole state. Load may fail; callers fall back to an empty state.
type Repository interface {
	Load() (State, error)
	Save(state State) error
}
