package round

// Mode selects how a round is bid and scored.
type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeOneVFive Mode = "1v5"
)

// Valid reports whether m is a known mode. The empty mode is treated as ModeNormal.
func (m Mode) Valid() bool {
	switch m {
	case "", ModeNormal, ModeOneVFive:
		return true
	}
	return false
}

// OrDefault resolves the empty mode to ModeNormal.
func (m Mode) OrDefault() Mode {
	if m == "" {
		return ModeNormal
	}
	return m
}

// Winner is the side that took a round.
type Winner string

const (
	WinnerHostTeam  Winner = "Host Team"
	WinnerOpponents Winner = "Opponents"
)

// Config is everything collected for a round before it is scored.
type Config struct {
	Players       []string `json:"players"`
	Host          string   `json:"host"`
	Friends       []string `json:"friends"`
	Mode          Mode     `json:"gameMode"`
	NoBids        bool     `json:"noBids"`
	Bid           int      `json:"bid"`
	OpponentScore int      `json:"opponentScore"`
}

// Result is a scored round. Results are never edited once appended to a game day.
type Result struct {
	Round         int      `json:"round" msgpack:"round"`
	Players       []string `json:"players" msgpack:"players"`
	Host          string   `json:"host" msgpack:"host"`
	Friends       []string `json:"friends" msgpack:"friends"`
	Bid           int      `json:"bid" msgpack:"bid"` // the bid actually used
	OpponentScore int      `json:"opponentScore" msgpack:"opponent_score"`
	Scores        Scores   `json:"scores" msgpack:"scores"`
	Winner        Winner   `json:"winner" msgpack:"winner"`
}

// IsFriend reports whether player was on the host's team as a friend.
func (r *Result) IsFriend(player string) bool {
	for _, f := range r.Friends {
		if f == player {
			return true
		}
	}
	return false
}

// HasPlayer reports whether player took part in the round.
func (r *Result) HasPlayer(player string) bool {
	for _, p := range r.Players {
		if p == player {
			return true
		}
	}
	return false
}

// Normalize replaces nil slices with empty ones so decoded and computed results compare equal.
func (r *Result) Normalize() {
	if r.Players == nil {
		r.Players = []string{}
	}
	if r.Friends == nil {
		r.Friends = []string{}
	}
	if r.Scores == nil {
		r.Scores = Scores{}
	}
}
