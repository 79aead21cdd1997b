package gameday

import "sync"

// Mock is an in-memory Repository for tests. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	state State

	LoadFunc func() (State, error)
	SaveFunc func(state State) error

	LoadCalls int
	SaveCalls []State
}

// NewMock returns a Mock holding state, or an empty state when nil.
func NewMock(state State) *Mock {
	if state == nil {
		state = State{}
	}
	return &Mock{state: state}
}

func (m *Mock) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return m.state.Clone(), nil
}

func (m *Mock) Save(state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, state.Clone())
	if m.SaveFunc != nil {
		return m.SaveFunc(state)
	}
	m.state = state.Clone()
	return nil
}

// Stored returns a copy of the last saved state.
func (m *Mock) Stored() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}
