package gameday

import (
	"encoding/json"
	"fmt"
)

// MarshalState encodes the state as the persisted document: an object keyed by date.
func MarshalState(state State) ([]byte, error) {
	if _, ok := state[AllTime]; ok {
		return nil, fmt.Errorf("marshal state: %w: %q", ErrReservedDate, AllTime)
	}
	if state == nil {
		state = State{}
	}
	return json.MarshalIndent(state, "", "  ")
}

// UnmarshalState decodes a persisted document. Missing slices decode as empty ones.
func UnmarshalState(data []byte) (State, error) {
	var raw map[string]*GameDay
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	state := make(State, len(raw))
	for date, day := range raw {
		if date == AllTime {
			return nil, fmt.Errorf("unmarshal state: %w: %q", ErrReservedDate, AllTime)
		}
		if day == nil {
			day = New(date)
		}
		day.Date = date
		day.normalize()
		state[date] = day
	}
	return state, nil
}
