package notifier

import (
	"sync"

	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/mauv0809/finding-friends/internal/stats"
)

var _ Notifier = (*Mock)(nil)

// RoundResultCall holds the arguments for a call to SendRoundResult.
type RoundResultCall struct {
	Date   string
	Result round.Result
	DryRun bool
}

// LeaderboardCall holds the arguments for a call to SendLeaderboard.
type LeaderboardCall struct {
	Label  string
	Report stats.Report
	DryRun bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for send functions
	SendRoundResultFunc func(date string, result round.Result, dryRun bool) error
	SendLeaderboardFunc func(label string, report stats.Report, dryRun bool) error

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(label string, report stats.Report) (any, error)
	FormatPlayerStatsResponseFunc    func(label string, entry stats.Entry) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records
	SendRoundResultCalls []RoundResultCall
	SendLeaderboardCalls []LeaderboardCall

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = nil
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendRoundResult(date string, result round.Result, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = append(m.SendRoundResultCalls, RoundResultCall{Date: date, Result: result, DryRun: dryRun})
	if m.SendRoundResultFunc != nil {
		return m.SendRoundResultFunc(date, result, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(label string, report stats.Report, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, LeaderboardCall{Label: label, Report: report, DryRun: dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(label, report, dryRun)
	}
	return nil
}

// RoundResults returns a copy of the recorded SendRoundResult calls.
func (m *Mock) RoundResults() []RoundResultCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RoundResultCall(nil), m.SendRoundResultCalls...)
}

func (m *Mock) FormatLeaderboardResponse(label string, report stats.Report) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(label, report)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(label string, entry stats.Entry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(label, entry)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}
