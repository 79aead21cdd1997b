package stats

import "github.com/mauv0809/finding-friends/internal/round"

// PlayerStats is a player's tally over some run of rounds. It is always derived from rounds
// and never stored.
type PlayerStats struct {
	TotalScore  int `json:"totalScore"`
	GamesPlayed int `json:"gamesPlayed"`
	HostGames   int `json:"hostGames"`
	HostWins    int `json:"hostWins"`
	FriendGames int `json:"friendGames"`
	FriendWins  int `json:"friendWins"`
}

// Table holds stats per player name, either for one game day or all of them.
type Table map[string]PlayerStats

// Entry is one row of a ranking.
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	PlayerStats
	// Win rates are nil when the player never held that role.
	HostRate   *float64 `json:"hostWinRate"`
	FriendRate *float64 `json:"friendWinRate"`
}

// Superlative names the player holding a title and the value that earned it.
type Superlative struct {
	Player string  `json:"player"`
	Value  float64 `json:"value"`
}

// Report is a ranking plus its superlatives. A nil superlative means nobody qualifies.
type Report struct {
	Players         []Entry      `json:"players"`
	BestHost        *Superlative `json:"bestHost"`
	BestFriend      *Superlative `json:"bestFriend"`
	MostGamesPlayed *Superlative `json:"mostGamesPlayed"`
}

// ScoreboardRow is one player's line on a day's scoreboard. A nil cell means the player sat
// that round out.
type ScoreboardRow struct {
	Player string `json:"player"`
	Cells  []*int `json:"cells"`
	Total  int    `json:"total"`
}

// Scoreboard is the players-by-rounds score matrix of a game day.
type Scoreboard struct {
	Rounds []int           `json:"rounds"`
	Rows   []ScoreboardRow `json:"rows"`
}

// RoundDetail summarises a recorded round, listing only players who scored.
type RoundDetail struct {
	Round         int                `json:"round"`
	Host          string             `json:"host"`
	Friends       []string           `json:"friends"`
	Bid           int                `json:"bid"`
	OpponentScore int                `json:"opponentScore"`
	Winner        round.Winner       `json:"winner"`
	Scores        []round.ScoreEntry `json:"scores"`
}
