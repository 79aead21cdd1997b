package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	roundsRecorded      map[string]int
	roundsRejected      int
	persistenceFailures map[string]int
	statsDurations      []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		roundsRecorded:      make(map[string]int),
		persistenceFailures: make(map[string]int),
		statsDurations:      make([]float64, 0),
	}
}

func (m *Mock) IncRoundsRecorded(mode, winner string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsRecorded[mode+"/"+winner]++
}

func (m *Mock) IncRoundsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsRejected++
}

func (m *Mock) IncPersistenceFailures(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailures[op]++
}

func (m *Mock) ObserveStatsDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsDurations = append(m.statsDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RoundsRecorded returns how many rounds were recorded, summed over modes and winners.
func (m *Mock) RoundsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.roundsRecorded {
		total += n
	}
	return total
}

// RoundsRecordedFor returns the count for one mode and winner.
func (m *Mock) RoundsRecordedFor(mode, winner string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsRecorded[mode+"/"+winner]
}

// RoundsRejected returns the number of times IncRoundsRejected was called.
func (m *Mock) RoundsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsRejected
}

// PersistenceFailures returns the number of failures recorded for op.
func (m *Mock) PersistenceFailures(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistenceFailures[op]
}

// StatsDurations returns the number of stats durations observed.
func (m *Mock) StatsDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.statsDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
