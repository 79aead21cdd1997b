package tracker

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/metrics"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/pubsub"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
)

// Tracker owns the in-memory game state and is the only writer to the repository.
type Tracker struct {
	mu       sync.Mutex
	state    gameday.State
	repo     gameday.Repository
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	now      func() time.Time
	loc      *time.Location
}

// New loads the stored state. A failed load is logged and the tracker starts empty.
// ps may be nil, in which case round notifications are sent inline.
func New(repo gameday.Repository, notifier notifier.Notifier, metrics metrics.Metrics, ps pubsub.PubSubClient, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	t := &Tracker{
		repo:     repo,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   ps,
		now:      time.Now,
		loc:      loc,
	}
	state, err := repo.Load()
	if err != nil {
		log.Error("Failed to load game days, starting with an empty state", "error", err)
		metrics.IncPersistenceFailures("load")
		state = make(gameday.State)
	}
	if state == nil {
		state = make(gameday.State)
	}
	t.state = state
	log.Info("Tracker ready", "days", len(state))
	return t
}

// CanCreateRound reports whether a new round may be recorded while viewing selectedDate.
func CanCreateRound(selectedDate, today string) bool {
	return selectedDate == today
}

// DefaultRoster is the roster shown for a day nobody has named players for yet.
func DefaultRoster() []string {
	roster := make([]string, round.PlayersPerRound)
	for i := range roster {
		roster[i] = fmt.Sprintf("Player %d", i+1)
	}
	return roster
}

// Today is the date key of the current day in the tracker's timezone.
func (t *Tracker) Today() string {
	return gameday.DateKey(t.now().In(t.loc))
}

// DateLabel is the heading shown for a stats view.
func (t *Tracker) DateLabel(view string) string {
	switch view {
	case gameday.AllTime:
		return "All Time Statistics"
	case t.Today():
		return "Today - " + view
	default:
		return view
	}
}

// Overview returns today's key and the stored days, newest first.
func (t *Tracker) Overview() DayOverview {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DayOverview{Today: t.Today(), Dates: t.state.Dates()}
}

// Day returns a copy of the day for date. Unknown days come back empty and are not stored.
func (t *Tracker) Day(date string) (*gameday.GameDay, error) {
	if date == gameday.AllTime {
		return nil, gameday.ErrReservedDate
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if day, ok := t.state[date]; ok {
		return day.Clone(), nil
	}
	return gameday.New(date), nil
}

// Roster returns the day's roster, or the default roster when none is set.
func (t *Tracker) Roster(date string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if day, ok := t.state[date]; ok && len(day.Players) > 0 {
		return append([]string(nil), day.Players...)
	}
	return DefaultRoster()
}

// SetRoster replaces the roster of a day and saves.
func (t *Tracker) SetRoster(date string, names []string) (*gameday.GameDay, error) {
	roster, err := cleanRoster(names)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	day, err := t.state.GetOrCreate(date)
	if err != nil {
		return nil, err
	}
	day.Players = roster
	t.saveLocked()
	log.Info("Roster updated", "date", date, "players", len(roster))
	return day.Clone(), nil
}

// cleanRoster trims names and rejects blanks and duplicates.
func cleanRoster(names []string) ([]string, error) {
	roster := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return nil, fmt.Errorf("%w: empty player name", ErrInvalidRoster)
		}
		if seen[n] {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidRoster, n)
		}
		seen[n] = true
		roster = append(roster, n)
	}
	return roster, nil
}

// RecordRound scores cfg as the next round of date and appends it. Only today accepts
// rounds. If roster is non-nil it replaces the day's roster in the same write.
//
// A failed save is logged and counted; the round stays recorded in memory.
func (t *Tracker) RecordRound(date string, cfg round.Config, roster []string, dryRun bool) (round.Result, error) {
	t.mu.Lock()

	if !CanCreateRound(date, t.Today()) {
		t.mu.Unlock()
		t.metrics.IncRoundsRejected()
		log.Warn("Round rejected, date is not today", "date", date)
		return round.Result{}, fmt.Errorf("%w: %s", ErrRoundNotAllowed, date)
	}

	var cleaned []string
	if roster != nil {
		var err error
		if cleaned, err = cleanRoster(roster); err != nil {
			t.mu.Unlock()
			t.metrics.IncRoundsRejected()
			return round.Result{}, err
		}
	}

	next := gameday.New(date)
	if day, ok := t.state[date]; ok {
		next = day.Clone()
	}
	result, err := round.Compute(cfg, next.CurrentRound)
	if err != nil {
		t.mu.Unlock()
		t.metrics.IncRoundsRejected()
		log.Warn("Round rejected", "date", date, "error", err)
		return round.Result{}, err
	}
	if err := next.Append(result); err != nil {
		t.mu.Unlock()
		return round.Result{}, err
	}
	if cleaned != nil {
		next.Players = cleaned
	}
	t.state[date] = next
	t.saveLocked()
	t.mu.Unlock()

	t.metrics.IncRoundsRecorded(string(cfg.Mode.OrDefault()), string(result.Winner))
	log.Info("Round recorded", "date", date, "round", result.Round, "winner", result.Winner, "bid", result.Bid)

	t.publish(RoundRecordedEvent{
		ID:     uuid.NewString(),
		Date:   date,
		Result: result,
		DryRun: dryRun,
	})
	return result, nil
}

// publish hands the event to Pub/Sub, or notifies inline when no client is configured
// or publishing fails.
func (t *Tracker) publish(event RoundRecordedEvent) {
	if t.pubsub != nil {
		err := t.pubsub.SendMessage(pubsub.EventRoundRecorded, event)
		if err == nil {
			return
		}
		log.Error("Failed to publish round event, notifying directly", "error", err, "id", event.ID)
	}
	if err := t.NotifyRoundRecorded(event); err != nil {
		log.Error("Failed to notify round result", "error", err, "id", event.ID)
	}
}

// NotifyRoundRecorded sends the round summary for a recorded round.
func (t *Tracker) NotifyRoundRecorded(event RoundRecordedEvent) error {
	return t.notifier.SendRoundResult(event.Date, event.Result, event.DryRun)
}

// saveLocked writes the whole state. Callers hold t.mu.
func (t *Tracker) saveLocked() {
	if err := t.repo.Save(t.state); err != nil {
		log.Error("Failed to save game days", "error", err)
		t.metrics.IncPersistenceFailures("save")
	}
}

// tableFor aggregates a view, either one date or gameday.AllTime.
func (t *Tracker) tableFor(view string) stats.Table {
	t.mu.Lock()
	defer t.mu.Unlock()
	if view != gameday.AllTime {
		day, ok := t.state[view]
		if !ok {
			return stats.Table{}
		}
		return stats.Aggregate(day.Rounds)
	}
	tables := make([]stats.Table, 0, len(t.state))
	for _, day := range t.state {
		tables = append(tables, stats.Aggregate(day.Rounds))
	}
	return stats.Merge(tables...)
}

// Stats ranks the players of a view, either one date or gameday.AllTime.
func (t *Tracker) Stats(view string) stats.Report {
	start := time.Now()
	report := stats.BuildReport(t.tableFor(view))
	t.metrics.ObserveStatsDuration(time.Since(start).Seconds())
	return report
}

// PlayerStats finds one player's ranking entry in a view. An exact case-insensitive
// name match wins over a substring match.
func (t *Tracker) PlayerStats(query, view string) (stats.Entry, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stats.Entry{}, fmt.Errorf("%w: empty query", ErrPlayerNotFound)
	}
	report := t.Stats(view)
	var partial *stats.Entry
	for i := range report.Players {
		name := strings.ToLower(report.Players[i].Player)
		if name == q {
			return report.Players[i], nil
		}
		if partial == nil && strings.Contains(name, q) {
			partial = &report.Players[i]
		}
	}
	if partial == nil {
		return stats.Entry{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, query)
	}
	return *partial, nil
}

// AnnounceLeaderboard posts the ranking of a view to the notifier.
func (t *Tracker) AnnounceLeaderboard(view string, dryRun bool) error {
	return t.notifier.SendLeaderboard(t.DateLabel(view), t.Stats(view), dryRun)
}

// Scoreboard returns the players-by-rounds matrix of a date.
func (t *Tracker) Scoreboard(date string) stats.Scoreboard {
	t.mu.Lock()
	defer t.mu.Unlock()
	var rounds []round.Result
	if day, ok := t.state[date]; ok {
		rounds = day.Rounds
	}
	return stats.BuildScoreboard(rounds)
}

// RoundDetails summarises every round of a date.
func (t *Tracker) RoundDetails(date string) []stats.RoundDetail {
	t.mu.Lock()
	defer t.mu.Unlock()
	var rounds []round.Result
	if day, ok := t.state[date]; ok {
		rounds = day.Rounds
	}
	return stats.Details(rounds)
}

// Export encodes the whole state as a JSON document.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return gameday.MarshalState(t.state)
}

// Import replaces the whole state with a JSON document and saves it. A document that
// fails to decode or breaks the round rules leaves the state untouched.
func (t *Tracker) Import(data []byte) error {
	state, err := gameday.UnmarshalState(data)
	if err != nil {
		return err
	}
	if err := state.Validate(); err != nil {
		log.Warn("Import rejected", "error", err)
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
	t.saveLocked()
	log.Info("State imported", "days", len(state))
	return nil
}
