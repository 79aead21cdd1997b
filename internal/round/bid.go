package round

import (
	"strconv"
	"strings"
)

const (
	DefaultBid = 80
	MinBid     = 0
	MaxBid     = 150

	// NoBidsBid is used when nobody bid in a normal round.
	NoBidsBid = 160
	// OneVFiveBid is the fixed bid of a 1v5 round.
	OneVFiveBid = 200

	// HostTeamPot is shared by the host team when it holds the opponents under the bid.
	HostTeamPot = 400
	// OpponentMultiplier scales the opponents' tracked score when they make the bid.
	OpponentMultiplier = 1.5

	PlayersPerRound = 6
	MaxFriends      = 2
)

// FinalBid resolves the bid a config is scored against.
func FinalBid(cfg Config) int {
	switch {
	case cfg.Mode.OrDefault() == ModeOneVFive:
		return OneVFiveBid
	case cfg.NoBids:
		return NoBidsBid
	default:
		return cfg.Bid
	}
}

// AdjustBid steps a bid by delta, clamped to [MinBid, MaxBid].
func AdjustBid(current, delta int) int {
	return max(MinBid, min(MaxBid, current+delta))
}

// ParseOpponentScore reads a typed opponent score. Leading digits are used; anything
// that does not start with a number, or does not fit an int, reads as 0.
func ParseOpponentScore(text string) int {
	text = strings.TrimSpace(text)
	sign := ""
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		sign, text = text[:1], text[1:]
	}
	end := strings.IndexFunc(text, func(c rune) bool { return c < '0' || c > '9' })
	if end < 0 {
		end = len(text)
	}
	n, err := strconv.Atoi(sign + text[:end])
	if err != nil {
		return 0
	}
	return n
}
