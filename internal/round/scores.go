package round

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ScoreEntry is one player's points for a round.
type ScoreEntry struct {
	Player string `json:"player" msgpack:"player"`
	Points int    `json:"points" msgpack:"points"`
}

// Scores maps players to points while keeping insertion order. A missing player reads as zero.
// It encodes to JSON as an object whose keys keep that order.
type Scores []ScoreEntry

// Get returns the points for player, or 0 when the player has no entry.
func (s Scores) Get(player string) int {
	for _, e := range s {
		if e.Player == player {
			return e.Points
		}
	}
	return 0
}

// Set updates the entry for player or appends a new one.
func (s *Scores) Set(player string, points int) {
	for i := range *s {
		if (*s)[i].Player == player {
			(*s)[i].Points = points
			return
		}
	}
	*s = append(*s, ScoreEntry{Player: player, Points: points})
}

func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Player)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Points))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Scores{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scores: expected object, got %v", tok)
	}
	out := Scores{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		player, ok := tok.(string)
		if !ok {
			return fmt.Errorf("scores: expected player name, got %v", tok)
		}
		var points int
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("scores: points for %q: %w", player, err)
		}
		out.Set(player, points)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}
