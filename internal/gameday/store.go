package gameday

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/vmihailenco/msgpack/v5"
)

// store keeps game days in SQL tables. Round player lists and score maps are msgpack blobs.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a Repository on a database prepared by database.InitDB.
func NewStore(db *sql.DB) Repository {
	return &store{
		db: db,
	}
}

func (s *store) Load() (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := make(State)

	dayRows, err := s.db.Query("SELECT date_key, current_round FROM game_days")
	if err != nil {
		return nil, fmt.Errorf("%w: query game days: %w", ErrPersistence, err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var date string
		var current int
		if err := dayRows.Scan(&date, &current); err != nil {
			return nil, fmt.Errorf("%w: scan game day: %w", ErrPersistence, err)
		}
		day := New(date)
		day.CurrentRound = current
		state[date] = day
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate game days: %w", ErrPersistence, err)
	}

	playerRows, err := s.db.Query("SELECT date_key, name FROM game_day_players ORDER BY date_key, position")
	if err != nil {
		return nil, fmt.Errorf("%w: query rosters: %w", ErrPersistence, err)
	}
	defer playerRows.Close()
	for playerRows.Next() {
		var date, name string
		if err := playerRows.Scan(&date, &name); err != nil {
			return nil, fmt.Errorf("%w: scan roster: %w", ErrPersistence, err)
		}
		day, ok := state[date]
		if !ok {
			log.Warn("Skipping roster entry for unknown game day", "date", date, "player", name)
			continue
		}
		day.Players = append(day.Players, name)
	}
	if err := playerRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rosters: %w", ErrPersistence, err)
	}

	roundRows, err := s.db.Query(`
		SELECT date_key, round_number, host, bid, opponent_score, winner, players_blob, friends_blob, scores_blob
		FROM rounds
		ORDER BY date_key, round_number
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query rounds: %w", ErrPersistence, err)
	}
	defer roundRows.Close()
	for roundRows.Next() {
		date, result, err := scanRound(roundRows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		day, ok := state[date]
		if !ok {
			log.Warn("Skipping round for unknown game day", "date", date, "round", result.Round)
			continue
		}
		day.Rounds = append(day.Rounds, result)
	}
	if err := roundRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rounds: %w", ErrPersistence, err)
	}

	log.Debug("Loaded game days from database", "days", len(state))
	return state, nil
}

// scanRound decodes one rounds row.
func scanRound(scanner interface{ Scan(...any) error }) (string, round.Result, error) {
	var date string
	var result round.Result
	var winner string
	var playersBlob, friendsBlob, scoresBlob []byte

	err := scanner.Scan(&date, &result.Round, &result.Host, &result.Bid, &result.OpponentScore, &winner, &playersBlob, &friendsBlob, &scoresBlob)
	if err != nil {
		return "", round.Result{}, fmt.Errorf("scan round: %w", err)
	}
	result.Winner = round.Winner(winner)
	if err := msgpack.Unmarshal(playersBlob, &result.Players); err != nil {
		return "", round.Result{}, fmt.Errorf("decode players of %s round %d: %w", date, result.Round, err)
	}
	if err := msgpack.Unmarshal(friendsBlob, &result.Friends); err != nil {
		return "", round.Result{}, fmt.Errorf("decode friends of %s round %d: %w", date, result.Round, err)
	}
	if err := msgpack.Unmarshal(scoresBlob, &result.Scores); err != nil {
		return "", round.Result{}, fmt.Errorf("decode scores of %s round %d: %w", date, result.Round, err)
	}
	result.Normalize()
	return date, result, nil
}

// Save replaces everything stored with state in a single transaction.
func (s *store) Save(state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := state[AllTime]; ok {
		return fmt.Errorf("%w: %w: %q", ErrPersistence, ErrReservedDate, AllTime)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrPersistence, err)
	}
	if err := saveLocked(tx, state); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrPersistence, err)
	}
	log.Debug("Saved game days to database", "days", len(state))
	return nil
}

func saveLocked(tx *sql.Tx, state State) error {
	for _, table := range []string{"rounds", "game_day_players", "game_days"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	dayStmt, err := tx.Prepare("INSERT INTO game_days (date_key, current_round) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer dayStmt.Close()
	playerStmt, err := tx.Prepare("INSERT INTO game_day_players (date_key, position, name) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer playerStmt.Close()
	roundStmt, err := tx.Prepare(`
		INSERT INTO rounds (date_key, round_number, host, bid, opponent_score, winner, players_blob, friends_blob, scores_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer roundStmt.Close()

	for date, day := range state {
		if _, err := dayStmt.Exec(date, day.CurrentRound); err != nil {
			return fmt.Errorf("insert game day %s: %w", date, err)
		}
		for i, name := range day.Players {
			if _, err := playerStmt.Exec(date, i, name); err != nil {
				return fmt.Errorf("insert roster of %s: %w", date, err)
			}
		}
		for _, r := range day.Rounds {
			playersBlob, err := msgpack.Marshal(r.Players)
			if err != nil {
				return err
			}
			friendsBlob, err := msgpack.Marshal(r.Friends)
			if err != nil {
				return err
			}
			scoresBlob, err := msgpack.Marshal(r.Scores)
			if err != nil {
				return err
			}
			if _, err := roundStmt.Exec(date, r.Round, r.Host, r.Bid, r.OpponentScore, string(r.Winner), playersBlob, friendsBlob, scoresBlob); err != nil {
				return fmt.Errorf("insert %s round %d: %w", date, r.Round, err)
			}
		}
	}
	return nil
}
