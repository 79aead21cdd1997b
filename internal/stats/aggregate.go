package stats

import "github.com/mauv0809/finding-friends/internal/round"

// Aggregate tallies per-player stats over rounds. Order does not matter.
func Aggregate(rounds []round.Result) Table {
	table := make(Table)
	for i := range rounds {
		r := &rounds[i]
		for _, player := range r.Players {
			s := table[player]
			s.TotalScore += r.Scores.Get(player)
			s.GamesPlayed++
			if player == r.Host {
				s.HostGames++
				if r.Winner == round.WinnerHostTeam {
					s.HostWins++
				}
			}
			if r.IsFriend(player) {
				s.FriendGames++
				if r.Winner == round.WinnerHostTeam {
					s.FriendWins++
				}
			}
			table[player] = s
		}
	}
	return table
}

// Merge sums tables field by field; merging per-day tables equals aggregating their rounds together.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		for player, s := range t {
			acc := out[player]
			acc.TotalScore += s.TotalScore
			acc.GamesPlayed += s.GamesPlayed
			acc.HostGames += s.HostGames
			acc.HostWins += s.HostWins
			acc.FriendGames += s.FriendGames
			acc.FriendWins += s.FriendWins
			out[player] = acc
		}
	}
	return out
}

// HostWinRate is HostWins/HostGames. ok is false when the player never hosted.
func (s PlayerStats) HostWinRate() (rate float64, ok bool) {
	if s.HostGames == 0 {
		return 0, false
	}
	return float64(s.HostWins) / float64(s.HostGames), true
}

// FriendWinRate is FriendWins/FriendGames. ok is false when the player was never a friend.
func (s PlayerStats) FriendWinRate() (rate float64, ok bool) {
	if s.FriendGames == 0 {
		return 0, false
	}
	return float64(s.FriendWins) / float64(s.FriendGames), true
}
