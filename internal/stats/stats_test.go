package stats_test

import (
	"testing"

	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seats = []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Fay"}

func mustCompute(t *testing.T, n int, cfg round.Config) round.Result {
	t.Helper()
	if cfg.Players == nil {
		cfg.Players = seats
	}
	if cfg.Mode == "" {
		cfg.Mode = round.ModeNormal
	}
	r, err := round.Compute(cfg, n)
	require.NoError(t, err)
	return r
}

// sampleRounds: Ann hosts and wins with Bob, Cat hosts and loses with Ann, Ann hosts a 1v5 and wins.
func sampleRounds(t *testing.T) []round.Result {
	return []round.Result{
		mustCompute(t, 1, round.Config{Host: "Ann", Friends: []string{"Bob"}, Bid: 80, OpponentScore: 60}),
		mustCompute(t, 2, round.Config{Host: "Cat", Friends: []string{"Ann"}, Bid: 100, OpponentScore: 120}),
		mustCompute(t, 3, round.Config{Host: "Ann", Mode: round.ModeOneVFive, OpponentScore: 150}),
	}
}

func TestAggregate(t *testing.T) {
	table := stats.Aggregate(sampleRounds(t))

	require.Len(t, table, 6)
	assert.Equal(t, stats.PlayerStats{TotalScore: 655, GamesPlayed: 3, HostGames: 2, HostWins: 2, FriendGames: 1, FriendWins: 0}, table["Ann"])
	assert.Equal(t, stats.PlayerStats{TotalScore: 85 + 45, GamesPlayed: 3, FriendGames: 1, FriendWins: 1}, table["Bob"])
	assert.Equal(t, stats.PlayerStats{TotalScore: 0, GamesPlayed: 3, HostGames: 1, HostWins: 0}, table["Cat"])
	assert.Equal(t, stats.PlayerStats{TotalScore: 45, GamesPlayed: 3}, table["Dan"])
}

func TestAggregate_GamesPlayedCountsAppearances(t *testing.T) {
	rounds := sampleRounds(t)
	rounds = append(rounds, mustCompute(t, 4, round.Config{
		Players: []string{"Ann", "Bob", "Cat", "Dan", "Eve", "Gus"},
		Host:    "Gus", Bid: 80, OpponentScore: 10,
	}))

	table := stats.Aggregate(rounds)
	assert.Equal(t, 3, table["Fay"].GamesPlayed)
	assert.Equal(t, 1, table["Gus"].GamesPlayed)
	assert.Equal(t, 390, table["Gus"].TotalScore)
	assert.Equal(t, 4, table["Ann"].GamesPlayed)
}

func TestAggregate_MissingScoreReadsAsZero(t *testing.T) {
	r := round.Result{Round: 1, Players: seats, Host: "Ann", Friends: []string{}, Scores: round.Scores{{Player: "Ann", Points: 300}}, Winner: round.WinnerHostTeam}

	table := stats.Aggregate([]round.Result{r})
	assert.Equal(t, 300, table["Ann"].TotalScore)
	assert.Equal(t, 0, table["Bob"].TotalScore)
	assert.Equal(t, 1, table["Bob"].GamesPlayed)
}

func TestMerge_MatchesAggregatingTogether(t *testing.T) {
	rounds := sampleRounds(t)

	merged := stats.Merge(stats.Aggregate(rounds[:2]), stats.Aggregate(rounds[2:]))
	assert.Equal(t, stats.Aggregate(rounds), merged)

	reversed := []round.Result{rounds[2], rounds[0], rounds[1]}
	assert.Equal(t, stats.Aggregate(rounds), stats.Aggregate(reversed))
}

func TestAggregate_Empty(t *testing.T) {
	table := stats.Aggregate(nil)
	assert.Empty(t, table)

	report := stats.BuildReport(table)
	assert.Empty(t, report.Players)
	assert.Nil(t, report.BestHost)
	assert.Nil(t, report.BestFriend)
	assert.Nil(t, report.MostGamesPlayed)
}

func TestWinRates(t *testing.T) {
	_, ok := stats.PlayerStats{}.HostWinRate()
	assert.False(t, ok, "never hosted has no rate")

	rate, ok := stats.PlayerStats{HostGames: 2}.HostWinRate()
	assert.True(t, ok)
	assert.Equal(t, 0.0, rate)

	rate, ok = stats.PlayerStats{FriendGames: 4, FriendWins: 3}.FriendWinRate()
	assert.True(t, ok)
	assert.Equal(t, 0.75, rate)
}
