package main

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/finding-friends/internal/config"
	"github.com/mauv0809/finding-friends/internal/database"
	"github.com/mauv0809/finding-friends/internal/gameday"
	"github.com/mauv0809/finding-friends/internal/round"
)

const (
	numDays      = 30
	roundsPerDay = 12
)

var seedPlayers = []string{
	"Seeder Ann", "Seeder Bob", "Seeder Cat", "Seeder Dan",
	"Seeder Eve", "Seeder Fay", "Seeder Gus", "Seeder Hal",
}

func main() {
	log.Info("Starting game day seeder...")
	cfg := config.Load()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %s", err)
	}

	var repo gameday.Repository
	if cfg.StoreBackend == config.BackendFile {
		repo = gameday.NewFileStore(cfg.StateFile)
	} else {
		db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		defer teardown()
		repo = gameday.NewStore(db)
	}

	state, err := repo.Load()
	if err != nil {
		log.Fatalf("Failed to load existing game days: %s", err)
	}

	startTime := time.Now()
	rng := rand.New(rand.NewSource(startTime.UnixNano()))
	seeded := seed(rng, startTime.In(loc), numDays, roundsPerDay)
	for date, day := range seeded {
		if _, exists := state[date]; exists {
			log.Info("Skipping existing game day", "date", date)
			continue
		}
		state[date] = day
	}

	if err := repo.Save(state); err != nil {
		log.Fatalf("Failed to save seeded game days: %s", err)
	}
	log.Info("Seeding complete", "days", len(seeded), "rounds_per_day", roundsPerDay, "duration", time.Since(startTime))
}

// seed builds days game days ending the day before end, each with rounds random rounds.
func seed(rng *rand.Rand, end time.Time, days, rounds int) gameday.State {
	state := make(gameday.State, days)
	for d := 1; d <= days; d++ {
		day, _ := state.GetOrCreate(gameday.DateKey(end.AddDate(0, 0, -d)))
		day.Players = append([]string(nil), seedPlayers...)
		for i := 0; i < rounds; i++ {
			result, err := round.Compute(randomConfig(rng), day.CurrentRound)
			if err != nil {
				log.Fatalf("Seeder produced an invalid round: %s", err)
			}
			if err := day.Append(result); err != nil {
				log.Fatalf("Failed to append seeded round: %s", err)
			}
		}
	}
	return state
}

func randomConfig(rng *rand.Rand) round.Config {
	picked := make([]string, len(seedPlayers))
	copy(picked, seedPlayers)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	players := picked[:round.PlayersPerRound]

	cfg := round.Config{
		Players:       players,
		Host:          players[0],
		Mode:          round.ModeNormal,
		OpponentScore: rng.Intn(41) * 5,
	}
	switch n := rng.Intn(10); {
	case n == 0:
		cfg.Mode = round.ModeOneVFive
	case n == 1:
		cfg.NoBids = true
	default:
		cfg.Bid = round.AdjustBid(round.DefaultBid, (rng.Intn(15)-7)*5)
		cfg.Friends = append([]string(nil), players[1:1+rng.Intn(round.MaxFriends+1)]...)
	}
	return cfg
}
