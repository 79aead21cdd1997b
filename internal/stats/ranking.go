package stats

import (
	"cmp"
	"slices"
	"strings"
)

// Rank orders players by total score, highest first. Equal totals are ordered by name.
func Rank(table Table) []Entry {
	entries := make([]Entry, 0, len(table))
	for player, s := range table {
		e := Entry{Player: player, PlayerStats: s}
		if rate, ok := s.HostWinRate(); ok {
			e.HostRate = &rate
		}
		if rate, ok := s.FriendWinRate(); ok {
			e.FriendRate = &rate
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.TotalScore, a.TotalScore); c != 0 {
			return c
		}
		return strings.Compare(a.Player, b.Player)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// BestHost picks the highest host win rate among players who hosted. On a tie the player
// ranked first keeps the title.
func BestHost(ranked []Entry) *Superlative {
	return bestRate(ranked, func(e Entry) (int, int) { return e.HostWins, e.HostGames })
}

// BestFriend picks the highest friend win rate among players who were a friend, with the same tie rule as BestHost.
func BestFriend(ranked []Entry) *Superlative {
	return bestRate(ranked, func(e Entry) (int, int) { return e.FriendWins, e.FriendGames })
}

// MostGamesPlayed picks the player with the most rounds played, ties kept by rank order.
func MostGamesPlayed(ranked []Entry) *Superlative {
	var best *Entry
	for i := range ranked {
		if ranked[i].GamesPlayed == 0 {
			continue
		}
		if best == nil || ranked[i].GamesPlayed > best.GamesPlayed {
			best = &ranked[i]
		}
	}
	if best == nil {
		return nil
	}
	return &Superlative{Player: best.Player, Value: float64(best.GamesPlayed)}
}

// bestRate compares wins/games by cross-multiplying so equal ratios tie exactly.
func bestRate(ranked []Entry, ratio func(Entry) (wins, games int)) *Superlative {
	var best *Entry
	var bestWins, bestGames int
	for i := range ranked {
		wins, games := ratio(ranked[i])
		if games == 0 {
			continue
		}
		if best == nil || wins*bestGames > bestWins*games {
			best = &ranked[i]
			bestWins, bestGames = wins, games
		}
	}
	if best == nil {
		return nil
	}
	return &Superlative{Player: best.Player, Value: float64(bestWins) / float64(bestGames)}
}

// BuildReport ranks a table and fills in the superlatives.
func BuildReport(table Table) Report {
	ranked := Rank(table)
	return Report{
		Players:         ranked,
		BestHost:        BestHost(ranked),
		BestFriend:      BestFriend(ranked),
		MostGamesPlayed: MostGamesPlayed(ranked),
	}
}
