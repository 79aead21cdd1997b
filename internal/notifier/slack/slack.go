package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/finding-friends/internal/metrics"
	"github.com/mauv0809/finding-friends/internal/notifier"
	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	// Set when no bot token is configured; every send is logged instead.
	forceDryRun bool
}

// NewNotifier creates a new Notifier. An empty token puts the notifier in permanent dry-run mode.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" {
		log.Warn("No Slack bot token configured, notifications will only be logged")
		return &Notifier{channelID: channelID, metrics: metrics, forceDryRun: true}
	}
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.forceDryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendRoundResult(date string, result round.Result, dryRun bool) error {
	msg := s.formatRoundResult(date, result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(label string, report stats.Report, dryRun bool) error {
	msg := s.formatLeaderboard(label, report)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(label string, report stats.Report) (any, error) {
	return s.formatLeaderboard(label, report), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(label string, entry stats.Entry) (any, error) {
	return s.formatPlayerStats(label, entry), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatRoundResult creates the Slack message for a freshly scored round using Block Kit.
func (s *Notifier) formatRoundResult(date string, result round.Result) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🃏 Round %d finished! 🃏", result.Round), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	friends := "none"
	if len(result.Friends) > 0 {
		friends = strings.Join(result.Friends, ", ")
	}
	detailsText := fmt.Sprintf("Host: %s\nFriends: %s\nBid: %d | Opponents scored: %d",
		result.Host, friends, result.Bid, result.OpponentScore)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var scoreLines []string
	for _, entry := range result.Scores {
		scoreLines = append(scoreLines, fmt.Sprintf("• %s: %d", entry.Player, entry.Points))
	}
	resultText := fmt.Sprintf("Result: %s won! 🏆", result.Winner)
	if len(scoreLines) > 0 {
		resultText += "\n" + strings.Join(scoreLines, "\n")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", date, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player ranking and its superlatives.
func (s *Notifier) formatLeaderboard(label string, report stats.Report) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Finding Friends Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", label, true, false)))

	if len(report.Players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No rounds recorded yet. Go play some cards!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, entry := range report.Players {
		var medal string
		switch entry.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Score: %d | Games: %d | Host wins: %d/%d | Friend wins: %d/%d",
			entry.Rank,
			medal,
			entry.Player,
			entry.TotalScore,
			entry.GamesPlayed,
			entry.HostWins,
			entry.HostGames,
			entry.FriendWins,
			entry.FriendGames,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	var titles []string
	if report.BestHost != nil {
		titles = append(titles, fmt.Sprintf("*Best host*: %s (%s)", report.BestHost.Player, percent(report.BestHost.Value)))
	}
	if report.BestFriend != nil {
		titles = append(titles, fmt.Sprintf("*Best friend*: %s (%s)", report.BestFriend.Player, percent(report.BestFriend.Value)))
	}
	if report.MostGamesPlayed != nil {
		titles = append(titles, fmt.Sprintf("*Most games*: %s (%.0f)", report.MostGamesPlayed.Player, report.MostGamesPlayed.Value))
	}
	if len(titles) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", strings.Join(titles, "\n"), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(label string, entry stats.Entry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", entry.Player)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", label, true, false)))

	playerText := fmt.Sprintf("> *Rank*: %d\n> *Total score*: %d\n> *Games played*: %d\n> *Host wins*: %d/%d (%s)\n> *Friend wins*: %d/%d (%s)",
		entry.Rank,
		entry.TotalScore,
		entry.GamesPlayed,
		entry.HostWins,
		entry.HostGames,
		ratePercent(entry.HostRate),
		entry.FriendWins,
		entry.FriendGames,
		ratePercent(entry.FriendRate),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

func ratePercent(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return percent(*rate)
}
