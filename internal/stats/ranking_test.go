package stats_test

import (
	"testing"

	"github.com/mauv0809/finding-friends/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_OrdersByTotalThenName(t *testing.T) {
	table := stats.Table{
		"Zed": {TotalScore: 100, GamesPlayed: 1},
		"Amy": {TotalScore: 100, GamesPlayed: 1},
		"Max": {TotalScore: 250, GamesPlayed: 1},
		"Bea": {TotalScore: 0, GamesPlayed: 1},
	}

	ranked := stats.Rank(table)
	require.Len(t, ranked, 4)
	var names []string
	for i, e := range ranked {
		names = append(names, e.Player)
		assert.Equal(t, i+1, e.Rank)
	}
	assert.Equal(t, []string{"Max", "Amy", "Zed", "Bea"}, names)
}

func TestRank_WinRatesAreNilWhenRoleNeverHeld(t *testing.T) {
	ranked := stats.Rank(stats.Table{
		"Amy": {GamesPlayed: 2, HostGames: 2, HostWins: 1},
	})
	require.Len(t, ranked, 1)
	require.NotNil(t, ranked[0].HostRate)
	assert.Equal(t, 0.5, *ranked[0].HostRate)
	assert.Nil(t, ranked[0].FriendRate)
}

func TestBestHost(t *testing.T) {
	t.Run("strict maximum wins", func(t *testing.T) {
		ranked := stats.Rank(stats.Table{
			"Amy": {TotalScore: 500, HostGames: 4, HostWins: 2},
			"Bob": {TotalScore: 300, HostGames: 3, HostWins: 3},
			"Cat": {TotalScore: 100},
		})
		best := stats.BestHost(ranked)
		require.NotNil(t, best)
		assert.Equal(t, "Bob", best.Player)
		assert.Equal(t, 1.0, best.Value)
	})

	t.Run("ties keep the higher ranked player", func(t *testing.T) {
		ranked := stats.Rank(stats.Table{
			"Amy": {TotalScore: 100, HostGames: 3, HostWins: 1},
			"Bob": {TotalScore: 300, HostGames: 6, HostWins: 2},
		})
		best := stats.BestHost(ranked)
		require.NotNil(t, best)
		assert.Equal(t, "Bob", best.Player)
	})

	t.Run("a zero rate still counts when someone hosted", func(t *testing.T) {
		ranked := stats.Rank(stats.Table{
			"Amy": {TotalScore: 0, HostGames: 2, HostWins: 0},
			"Bob": {TotalScore: 50},
		})
		best := stats.BestHost(ranked)
		require.NotNil(t, best)
		assert.Equal(t, "Amy", best.Player)
		assert.Equal(t, 0.0, best.Value)
	})

	t.Run("nobody hosted", func(t *testing.T) {
		ranked := stats.Rank(stats.Table{"Amy": {GamesPlayed: 1}})
		assert.Nil(t, stats.BestHost(ranked))
	})
}

func TestBestFriend(t *testing.T) {
	ranked := stats.Rank(stats.Table{
		"Amy": {TotalScore: 400, FriendGames: 2, FriendWins: 1},
		"Bob": {TotalScore: 200, FriendGames: 4, FriendWins: 3},
		"Cat": {TotalScore: 300, FriendGames: 4, FriendWins: 3},
	})
	best := stats.BestFriend(ranked)
	require.NotNil(t, best)
	assert.Equal(t, "Cat", best.Player)
	assert.Equal(t, 0.75, best.Value)
}

func TestMostGamesPlayed(t *testing.T) {
	ranked := stats.Rank(stats.Table{
		"Amy": {TotalScore: 10, GamesPlayed: 5},
		"Bob": {TotalScore: 90, GamesPlayed: 5},
		"Cat": {TotalScore: 50, GamesPlayed: 2},
	})
	most := stats.MostGamesPlayed(ranked)
	require.NotNil(t, most)
	assert.Equal(t, "Bob", most.Player)
	assert.Equal(t, 5.0, most.Value)
}
