package gameday_test

import (
	"testing"
	"time"

	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seats = []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay"}

func computeRound(t *testing.T, n int, host string, friends []string, bid, opponentScore int) round.Result {
	t.Helper()
	r, err := round.Compute(round.Config{Players: seats, Host: host, Friends: friends, Mode: round.ModeNormal, Bid: bid, OpponentScore: opponentScore}, n)
	require.NoError(t, err)
	return r
}

// sampleState builds two days with a couple of rounds each.
func sampleState(t *testing.T) gameday.State {
	t.Helper()
	state := gameday.State{}

	monday, err := state.GetOrCreate("Mon Oct 12 2026")
	require.NoError(t, err)
	monday.Players = append(monday.Players, seats...)
	require.NoError(t, monday.Append(computeRound(t, 1, "Ann", []string{"Bob"}, 80, 60)))
	require.NoError(t, monday.Append(computeRound(t, 2, "Cat", nil, 100, 140)))

	tuesday, err := state.GetOrCreate("Tue Oct 13 2026")
	require.NoError(t, err)
	tuesday.Players = append(tuesday.Players, append(seats, "Gus")...)
	require.NoError(t, tuesday.Append(computeRound(t, 1, "Eve", []string{"Fay", "Dan"}, 120, 30)))
	return state
}

func TestGetOrCreate(t *testing.T) {
	state := gameday.State{}

	day, err := state.GetOrCreate("Wed Oct 14 2026")
	require.NoError(t, err)
	assert.Equal(t, "Wed Oct 14 2026", day.Date)
	assert.Equal(t, 1, day.CurrentRound)
	assert.Empty(t, day.Rounds)
	assert.NotNil(t, day.Players)

	again, err := state.GetOrCreate("Wed Oct 14 2026")
	require.NoError(t, err)
	assert.Same(t, day, again)

	_, err = state.GetOrCreate(gameday.AllTime)
	assert.ErrorIs(t, err, gameday.ErrReservedDate)
}

func TestAppend(t *testing.T) {
	day := gameday.New("Wed Oct 14 2026")

	require.NoError(t, day.Append(computeRound(t, 1, "Ann", nil, 80, 10)))
	assert.Equal(t, 2, day.CurrentRound)

	err := day.Append(computeRound(t, 1, "Ann", nil, 80, 10))
	assert.ErrorIs(t, err, gameday.ErrRoundOutOfOrder)
	assert.Len(t, day.Rounds, 1, "a rejected round leaves the log unchanged")
	assert.Equal(t, 2, day.CurrentRound)
}

func TestClone_IsDeep(t *testing.T) {
	state := sampleState(t)
	clone := state.Clone()

	clone["Mon Oct 12 2026"].Rounds[0].Scores.Set("Ann", 9999)
	clone["Mon Oct 12 2026"].Players[0] = "changed"

	assert.Equal(t, 255, state["Mon Oct 12 2026"].Rounds[0].Scores.Get("Ann"))
	assert.Equal(t, "Ann", state["Mon Oct 12 2026"].Players[0])
}

func TestDates_NewestFirst(t *testing.T) {
	state := gameday.State{
		"Mon Oct 12 2026": gameday.New("Mon Oct 12 2026"),
		"Fri Jan 02 2026": gameday.New("Fri Jan 02 2026"),
		"Tue Oct 13 2026": gameday.New("Tue Oct 13 2026"),
		"not a date":      gameday.New("not a date"),
	}
	assert.Equal(t, []string{"Tue Oct 13 2026", "Mon Oct 12 2026", "Fri Jan 02 2026", "not a date"}, state.Dates())
}

func TestState_Validate(t *testing.T) {
	require.NoError(t, sampleState(t).Validate())

	t.Run("round numbers must run from 1", func(t *testing.T) {
		state := sampleState(t)
		for _, day := range state {
			if len(day.Rounds) > 0 {
				day.Rounds[0].Round = 7
				break
			}
		}
		assert.ErrorIs(t, state.Validate(), round.ErrInvalidRoundConfig)
	})

	t.Run("current round must follow the log", func(t *testing.T) {
		state := sampleState(t)
		for _, day := range state {
			day.CurrentRound = 1
		}
		err := state.Validate()
		require.ErrorIs(t, err, round.ErrInvalidRoundConfig)
		assert.Contains(t, err.Error(), "currentRound")
	})

	t.Run("roster names must be distinct", func(t *testing.T) {
		day := gameday.New("Wed Oct 14 2026")
		day.Players = []string{"Ann", "Ann"}
		assert.ErrorIs(t, day.Validate(), round.ErrInvalidRoundConfig)
	})

	t.Run("rounds must follow the round rules", func(t *testing.T) {
		state := sampleState(t)
		for _, day := range state {
			if len(day.Rounds) > 0 {
				day.Rounds[0].Scores.Set(day.Rounds[0].Host, -1)
				break
			}
		}
		err := state.Validate()
		require.ErrorIs(t, err, round.ErrInvalidRoundConfig)
		assert.Contains(t, err.Error(), "negative points")
	})
}

func TestDateKey(t *testing.T) {
	day := time.Date(2026, time.October, 4, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "Sun Oct 04 2026", gameday.DateKey(day))
}
