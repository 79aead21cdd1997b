package notifier

import (
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For recorded rounds
	SendRoundResult(date string, result round.Result, dryRun bool) error
	// For the daily leaderboard
	SendLeaderboard(label string, report stats.Report, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(label string, report stats.Report) (any, error)
	FormatPlayerStatsResponse(label string, entry stats.Entry) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
