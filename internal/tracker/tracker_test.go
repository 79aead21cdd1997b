package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/finding-friends/internal/database"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/metrics"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/pubsub"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	today     = "Wed Oct 14 2026"
	yesterday = "Tue Oct 13 2026"
)

var seats = []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay"}

type fixture struct {
	tracker  *Tracker
	repo     *gameday.Mock
	notifier *notifier.Mock
	metrics  *metrics.Mock
}

func setupTracker(t *testing.T, initial gameday.State, ps pubsub.PubSubClient) fixture {
	t.Helper()
	repo := gameday.NewMock(initial)
	n := notifier.NewMock()
	m := metrics.NewMock()
	tr := New(repo, n, m, ps, time.UTC)
	tr.now = func() time.Time { return time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC) }
	return fixture{tracker: tr, repo: repo, notifier: n, metrics: m}
}

func hostWithFriend(opponentScore int) round.Config {
	return round.Config{
		Players:       seats,
		Host:          "Ann",
		Friends:       []string{"Bob"},
		Mode:          round.ModeNormal,
		Bid:           80,
		OpponentScore: opponentScore,
	}
}

func TestCanCreateRound(t *testing.T) {
	assert.True(t, CanCreateRound(today, today))
	assert.False(t, CanCreateRound(yesterday, today))
	assert.False(t, CanCreateRound(gameday.AllTime, today))
}

func TestDefaultRoster(t *testing.T) {
	roster := DefaultRoster()
	assert.Equal(t, []string{"Player 1", "Player 2", "Player 3", "Player 4", "Player 5", "Player 6"}, roster)
	roster[0] = "changed"
	assert.Equal(t, "Player 1", DefaultRoster()[0])
}

func TestNew_LoadFailureStartsEmpty(t *testing.T) {
	repo := gameday.NewMock(nil)
	repo.LoadFunc = func() (gameday.State, error) {
		return nil, gameday.ErrPersistence
	}
	m := metrics.NewMock()
	tr := New(repo, notifier.NewMock(), m, nil, time.UTC)

	assert.Empty(t, tr.Overview().Dates)
	assert.Equal(t, 1, m.PersistenceFailures("load"))
}

func TestTodayAndLabels(t *testing.T) {
	f := setupTracker(t, nil, nil)
	assert.Equal(t, today, f.tracker.Today())
	assert.Equal(t, "All Time Statistics", f.tracker.DateLabel(gameday.AllTime))
	assert.Equal(t, "Today - "+today, f.tracker.DateLabel(today))
	assert.Equal(t, yesterday, f.tracker.DateLabel(yesterday))
}

func TestToday_UsesLocation(t *testing.T) {
	f := setupTracker(t, nil, nil)
	tokyo := time.FixedZone("JST", 9*60*60)
	f.tracker.loc = tokyo
	// 18:30 UTC is already the next day at UTC+9.
	assert.Equal(t, "Thu Oct 15 2026", f.tracker.Today())
}

func TestRecordRound_AppendsAndSaves(t *testing.T) {
	f := setupTracker(t, nil, nil)

	result, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Round)
	assert.Equal(t, 255, result.Scores.Get("Ann"))
	assert.Equal(t, 85, result.Scores.Get("Bob"))

	second, err := f.tracker.RecordRound(today, hostWithFriend(100), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Round)
	assert.Equal(t, round.WinnerOpponents, second.Winner)

	stored := f.repo.Stored()
	require.Contains(t, stored, today)
	assert.Len(t, stored[today].Rounds, 2)
	assert.Equal(t, 3, stored[today].CurrentRound)
	assert.Len(t, f.repo.SaveCalls, 2)

	assert.Equal(t, 1, f.metrics.RoundsRecordedFor("normal", "Host Team"))
	assert.Equal(t, 1, f.metrics.RoundsRecordedFor("normal", "Opponents"))

	calls := f.notifier.RoundResults()
	require.Len(t, calls, 2)
	assert.Equal(t, today, calls[0].Date)
	assert.Equal(t, 1, calls[0].Result.Round)
}

func TestRecordRound_OnlyToday(t *testing.T) {
	f := setupTracker(t, nil, nil)

	_, err := f.tracker.RecordRound(yesterday, hostWithFriend(60), nil, false)
	require.ErrorIs(t, err, ErrRoundNotAllowed)

	assert.Empty(t, f.repo.SaveCalls)
	assert.Empty(t, f.tracker.Overview().Dates)
	assert.Equal(t, 1, f.metrics.RoundsRejected())
}

func TestRecordRound_InvalidConfigLeavesStateUnchanged(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	bad := hostWithFriend(60)
	bad.Host = "Zed"
	_, err = f.tracker.RecordRound(today, bad, []string{"Ann", "Bob"}, false)
	require.ErrorIs(t, err, round.ErrInvalidRoundConfig)

	day, err := f.tracker.Day(today)
	require.NoError(t, err)
	assert.Len(t, day.Rounds, 1)
	assert.Equal(t, 2, day.CurrentRound)
	assert.Empty(t, day.Players)
	assert.Len(t, f.repo.SaveCalls, 1)
	assert.Equal(t, 1, f.metrics.RoundsRejected())
	assert.Len(t, f.notifier.RoundResults(), 1)
}

func TestRecordRound_StoresRoster(t *testing.T) {
	f := setupTracker(t, nil, nil)
	roster := []string{" Ann ", "Bob", "Cat", "Dan", "Eve", "Fay", "Gus"}

	_, err := f.tracker.RecordRound(today, hostWithFriend(60), roster, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay", "Gus"}, f.tracker.Roster(today))

	_, err = f.tracker.RecordRound(today, hostWithFriend(60), []string{"Ann", "Ann"}, false)
	require.ErrorIs(t, err, ErrInvalidRoster)
}

func TestRecordRound_SaveFailureKeepsRound(t *testing.T) {
	f := setupTracker(t, nil, nil)
	f.repo.SaveFunc = func(gameday.State) error {
		return errors.New("disk full")
	}

	result, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Round)

	day, err := f.tracker.Day(today)
	require.NoError(t, err)
	assert.Len(t, day.Rounds, 1)
	assert.Equal(t, 1, f.metrics.PersistenceFailures("save"))
}

func TestRecordRound_PublishesWhenPubSubConfigured(t *testing.T) {
	ps := pubsub.NewMock()
	f := setupTracker(t, nil, ps)

	result, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, true)
	require.NoError(t, err)

	calls := ps.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pubsub.EventRoundRecorded, calls[0].Topic)
	event, ok := calls[0].Data.(RoundRecordedEvent)
	require.True(t, ok)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, today, event.Date)
	assert.Equal(t, result, event.Result)
	assert.True(t, event.DryRun)
	assert.Empty(t, f.notifier.RoundResults(), "notification is left to the subscriber")
}

func TestRecordRound_PublishFailureNotifiesDirectly(t *testing.T) {
	ps := pubsub.NewMock()
	ps.SendMessageFunc = func(pubsub.EventType, any) error {
		return errors.New("topic not found")
	}
	f := setupTracker(t, nil, ps)

	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)
	assert.Len(t, f.notifier.RoundResults(), 1)
}

func TestRecordRound_NotifyFailureIsNotFatal(t *testing.T) {
	f := setupTracker(t, nil, nil)
	f.notifier.SendRoundResultFunc = func(string, round.Result, bool) error {
		return errors.New("slack down")
	}
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)
}

func TestRoundRecordedEvent_MsgpackRoundTrip(t *testing.T) {
	result, err := round.Compute(hostWithFriend(60), 1)
	require.NoError(t, err)
	in := RoundRecordedEvent{ID: "id-1", Date: today, Result: result}

	data, err := pubsub.Encode(in)
	require.NoError(t, err)
	var out RoundRecordedEvent
	require.NoError(t, pubsub.Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestDay_UnknownIsNotStored(t *testing.T) {
	f := setupTracker(t, nil, nil)
	day, err := f.tracker.Day(yesterday)
	require.NoError(t, err)
	assert.Equal(t, 1, day.CurrentRound)
	assert.Empty(t, day.Rounds)
	assert.Empty(t, f.tracker.Overview().Dates)

	_, err = f.tracker.Day(gameday.AllTime)
	assert.ErrorIs(t, err, gameday.ErrReservedDate)
}

func TestDay_ReturnsCopy(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	day, err := f.tracker.Day(today)
	require.NoError(t, err)
	day.Rounds[0].Scores.Set("Ann", 0)

	again, err := f.tracker.Day(today)
	require.NoError(t, err)
	assert.Equal(t, 255, again.Rounds[0].Scores.Get("Ann"))
}

func TestSetRoster(t *testing.T) {
	f := setupTracker(t, nil, nil)
	assert.Equal(t, DefaultRoster(), f.tracker.Roster(yesterday))

	day, err := f.tracker.SetRoster(yesterday, []string{"Ann", " Bob"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, day.Players)
	assert.Equal(t, []string{"Ann", "Bob"}, f.repo.Stored()[yesterday].Players)

	_, err = f.tracker.SetRoster(yesterday, []string{"Ann", "  "})
	assert.ErrorIs(t, err, ErrInvalidRoster)
	_, err = f.tracker.SetRoster(gameday.AllTime, []string{"Ann"})
	assert.ErrorIs(t, err, gameday.ErrReservedDate)
}

func TestStats_DailyAndAllTime(t *testing.T) {
	initial := gameday.State{}
	past, err := initial.GetOrCreate(yesterday)
	require.NoError(t, err)
	r, err := round.Compute(round.Config{Players: seats, Host: "Cat", Mode: round.ModeOneVFive, OpponentScore: 10}, 1)
	require.NoError(t, err)
	require.NoError(t, past.Append(r))

	f := setupTracker(t, initial, nil)
	_, err = f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	daily := f.tracker.Stats(today)
	require.Len(t, daily.Players, 6)
	assert.Equal(t, "Ann", daily.Players[0].Player)
	assert.Equal(t, 255, daily.Players[0].TotalScore)

	allTime := f.tracker.Stats(gameday.AllTime)
	require.Len(t, allTime.Players, 6)
	assert.Equal(t, "Cat", allTime.Players[0].Player)
	assert.Equal(t, 400, allTime.Players[0].TotalScore)
	assert.Equal(t, 2, allTime.Players[0].GamesPlayed)
	require.NotNil(t, allTime.MostGamesPlayed)
	assert.Equal(t, 2.0, allTime.MostGamesPlayed.Value)

	empty := f.tracker.Stats("Mon Oct 05 2026")
	assert.Empty(t, empty.Players)
	assert.Nil(t, empty.BestHost)

	assert.Equal(t, 3, f.metrics.StatsDurations())
}

func TestPlayerStats(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), []string{"Ann", "Annabel", "Bob", "Cat", "Dan", "Eve", "Fay"}, false)
	require.NoError(t, err)

	entry, err := f.tracker.PlayerStats("BOB", today)
	require.NoError(t, err)
	assert.Equal(t, "Bob", entry.Player)
	assert.Equal(t, 85, entry.TotalScore)

	entry, err = f.tracker.PlayerStats("fa", gameday.AllTime)
	require.NoError(t, err)
	assert.Equal(t, "Fay", entry.Player)

	_, err = f.tracker.PlayerStats("zed", gameday.AllTime)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, err = f.tracker.PlayerStats(" ", gameday.AllTime)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAnnounceLeaderboard(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	require.NoError(t, f.tracker.AnnounceLeaderboard(today, true))
	require.Len(t, f.notifier.SendLeaderboardCalls, 1)
	call := f.notifier.SendLeaderboardCalls[0]
	assert.Equal(t, "Today - "+today, call.Label)
	assert.True(t, call.DryRun)
	assert.Len(t, call.Report.Players, 6)
}

func TestScoreboardAndDetails(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	board := f.tracker.Scoreboard(today)
	assert.Equal(t, []int{1}, board.Rounds)
	require.Len(t, board.Rows, 6)
	assert.Equal(t, "Ann", board.Rows[0].Player)

	details := f.tracker.RoundDetails(today)
	require.Len(t, details, 1)
	assert.Len(t, details[0].Scores, 2)

	assert.Empty(t, f.tracker.Scoreboard(yesterday).Rows)
	assert.Empty(t, f.tracker.RoundDetails(yesterday))
}

func TestExportImport(t *testing.T) {
	f := setupTracker(t, nil, nil)
	_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)

	doc, err := f.tracker.Export()
	require.NoError(t, err)

	other := setupTracker(t, nil, nil)
	require.NoError(t, other.tracker.Import(doc))
	assert.Equal(t, f.repo.Stored(), other.repo.Stored())
	assert.Equal(t, []string{today}, other.tracker.Overview().Dates)

	err = other.tracker.Import([]byte(`{"all-time": {}}`))
	assert.ErrorIs(t, err, gameday.ErrReservedDate)
	assert.Error(t, other.tracker.Import([]byte(`not json`)))
	assert.Equal(t, []string{today}, other.tracker.Overview().Dates)
}

func TestImport_RejectsDocumentsBreakingRoundRules(t *testing.T) {
	stale := `{"` + today + `": {"players": [], "currentRound": 1, "rounds": [
		{"round": 1, "players": ["Ann","Bob","Cat","Dan","Eve","Fay"], "host": "Ann", "friends": ["Bob"],
		 "bid": 80, "opponentScore": 60, "scores": {"Ann": 255, "Bob": 85}, "winner": "Host Team"}]}}`
	broken := `{"` + today + `": {"players": ["A"], "currentRound": 2, "rounds": [
		{"round": 1, "players": ["A"], "host": "A", "friends": ["Q","R","S"],
		 "bid": -5, "opponentScore": 0, "scores": {"A": -999}, "winner": "nobody"}]}}`
	skipped := `{"` + today + `": {"players": [], "currentRound": 3, "rounds": [
		{"round": 2, "players": ["Ann","Bob","Cat","Dan","Eve","Fay"], "host": "Ann", "friends": [],
		 "bid": 80, "opponentScore": 60, "scores": {"Ann": 340}, "winner": "Host Team"}]}}`

	for name, doc := range map[string]string{"stale current round": stale, "broken round": broken, "skipped round number": skipped} {
		t.Run(name, func(t *testing.T) {
			f := setupTracker(t, nil, nil)
			_, err := f.tracker.RecordRound(today, hostWithFriend(60), nil, false)
			require.NoError(t, err)
			savesBefore := len(f.repo.SaveCalls)
			before, err := f.tracker.Export()
			require.NoError(t, err)

			err = f.tracker.Import([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, round.ErrInvalidRoundConfig)

			after, err := f.tracker.Export()
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))
			assert.Len(t, f.repo.SaveCalls, savesBefore)
		})
	}
}

func TestImport_KeepsRoundNumberingForSQLStore(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	m := metrics.NewMock()
	tr := New(gameday.NewStore(db), notifier.NewMock(), m, nil, time.UTC)
	tr.now = func() time.Time { return time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC) }

	doc := `{"` + today + `": {"players": [], "currentRound": 2, "rounds": [
		{"round": 1, "players": ["Ann","Bob","Cat","Dan","Eve","Fay"], "host": "Ann", "friends": ["Bob"],
		 "bid": 80, "opponentScore": 60, "scores": {"Ann": 255, "Bob": 85}, "winner": "Host Team"}]}}`
	require.NoError(t, tr.Import([]byte(doc)))

	result, err := tr.RecordRound(today, hostWithFriend(60), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Round)
	assert.Zero(t, m.PersistenceFailures("save"))

	stored, err := gameday.NewStore(db).Load()
	require.NoError(t, err)
	require.Contains(t, stored, today)
	assert.Len(t, stored[today].Rounds, 2)
}
