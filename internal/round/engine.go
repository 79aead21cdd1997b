package round

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Validate checks the structural rules of a round config. The returned error, if any,
// is a *ValidationError that unwraps to ErrInvalidRoundConfig.
func Validate(cfg Config) error {
	var violations []string
	add := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if !cfg.Mode.Valid() {
		add("gameMode: unknown mode %q", cfg.Mode)
	}

	if len(cfg.Players) != PlayersPerRound {
		add("players: need exactly %d, got %d", PlayersPerRound, len(cfg.Players))
	}
	seen := make(map[string]bool, len(cfg.Players))
	for _, p := range cfg.Players {
		if p == "" {
			add("players: empty name")
			continue
		}
		if seen[p] {
			add("players: %q selected twice", p)
		}
		seen[p] = true
	}

	if cfg.Host == "" {
		add("host: not selected")
	} else if !seen[cfg.Host] {
		add("host: %q is not playing this round", cfg.Host)
	}

	if cfg.Mode.OrDefault() == ModeOneVFive && len(cfg.Friends) > 0 {
		add("friends: 1v5 rounds have no friends")
	}
	if len(cfg.Friends) > MaxFriends {
		add("friends: at most %d, got %d", MaxFriends, len(cfg.Friends))
	}
	friendSeen := make(map[string]bool, len(cfg.Friends))
	for _, f := range cfg.Friends {
		switch {
		case f == cfg.Host && f != "":
			add("friends: host %q cannot also be a friend", f)
		case !seen[f]:
			add("friends: %q is not playing this round", f)
		case friendSeen[f]:
			add("friends: %q selected twice", f)
		}
		friendSeen[f] = true
	}

	if cfg.OpponentScore < 0 {
		add("opponentScore: must not be negative, got %d", cfg.OpponentScore)
	}
	if cfg.Mode.OrDefault() == ModeNormal && !cfg.NoBids && (cfg.Bid < MinBid || cfg.Bid > MaxBid) {
		add("bid: must be between %d and %d, got %d", MinBid, MaxBid, cfg.Bid)
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ValidateResult checks a stored or imported result against the round rules: the
// config it implies must be valid, the winner must follow from the bid and opponent
// score, and only players of the round may hold points, never negative ones.
func ValidateResult(r Result) error {
	var violations []string
	if err := Validate(r.impliedConfig()); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			violations = append(violations, verr.Violations...)
		}
	}
	if r.Round < 1 {
		violations = append(violations, fmt.Sprintf("round: must be positive, got %d", r.Round))
	}

	want := WinnerHostTeam
	if r.OpponentScore >= r.Bid {
		want = WinnerOpponents
	}
	switch r.Winner {
	case WinnerHostTeam, WinnerOpponents:
		if r.Winner != want {
			violations = append(violations, fmt.Sprintf("winner: %q does not match bid %d and opponent score %d", r.Winner, r.Bid, r.OpponentScore))
		}
	default:
		violations = append(violations, fmt.Sprintf("winner: unknown winner %q", r.Winner))
	}

	for _, e := range r.Scores {
		if !r.HasPlayer(e.Player) {
			violations = append(violations, fmt.Sprintf("scores: %q is not playing this round", e.Player))
		}
		if e.Points < 0 {
			violations = append(violations, fmt.Sprintf("scores: %q has negative points %d", e.Player, e.Points))
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// impliedConfig rebuilds the config a result was scored from. The bid identifies the mode:
// OneVFiveBid only comes from 1v5 rounds and NoBidsBid only from rounds nobody bid in.
func (r Result) impliedConfig() Config {
	cfg := Config{
		Players:       r.Players,
		Host:          r.Host,
		Friends:       r.Friends,
		Mode:          ModeNormal,
		Bid:           r.Bid,
		OpponentScore: r.OpponentScore,
	}
	switch r.Bid {
	case OneVFiveBid:
		cfg.Mode = ModeOneVFive
	case NoBidsBid:
		cfg.NoBids = true
	}
	return cfg
}

// Compute scores a round. roundNumber is stamped on the result as given; numbering is
// owned by the game day the result is appended to.
//
// Every share is rounded on its own, so the points handed out can drift from the pot by
// the rounding of each term.
func Compute(cfg Config, roundNumber int) (Result, error) {
	if err := Validate(cfg); err != nil {
		return Result{}, err
	}
	if roundNumber < 1 {
		return Result{}, &ValidationError{Violations: []string{fmt.Sprintf("round: must be positive, got %d", roundNumber)}}
	}

	finalBid := FinalBid(cfg)
	result := Result{
		Round:         roundNumber,
		Players:       slices.Clone(cfg.Players),
		Host:          cfg.Host,
		Friends:       append([]string{}, cfg.Friends...),
		Bid:           finalBid,
		OpponentScore: cfg.OpponentScore,
		Scores:        make(Scores, 0, len(cfg.Players)),
	}
	for _, p := range cfg.Players {
		result.Scores.Set(p, 0)
	}

	if cfg.OpponentScore >= finalBid {
		result.Winner = WinnerOpponents
		opponents := make([]string, 0, len(cfg.Players))
		for _, p := range cfg.Players {
			if p != cfg.Host && !result.IsFriend(p) {
				opponents = append(opponents, p)
			}
		}
		share := float64(cfg.OpponentScore) * OpponentMultiplier / float64(len(opponents))
		for _, p := range opponents {
			result.Scores.Set(p, roundShare(share))
		}
		return result, nil
	}

	result.Winner = WinnerHostTeam
	if cfg.Mode.OrDefault() == ModeOneVFive {
		result.Scores.Set(cfg.Host, HostTeamPot)
		return result, nil
	}

	base := float64(HostTeamPot - cfg.OpponentScore)
	switch len(cfg.Friends) {
	case 0:
		result.Scores.Set(cfg.Host, roundShare(base))
	case 1:
		result.Scores.Set(cfg.Host, roundShare(base*0.75))
		result.Scores.Set(cfg.Friends[0], roundShare(base*0.25))
	case 2:
		result.Scores.Set(cfg.Host, roundShare(base*0.5))
		result.Scores.Set(cfg.Friends[0], roundShare(base*0.25))
		result.Scores.Set(cfg.Friends[1], roundShare(base*0.25))
	}
	return result, nil
}

// roundShare rounds half up. Shares are never negative here, so this matches rounding to nearest.
func roundShare(v float64) int {
	return int(math.Floor(v + 0.5))
}
