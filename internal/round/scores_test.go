package round_test

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/finding-friends/internal/round"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScores_GetDefaultsToZero(t *testing.T) {
	scores := round.Scores{}
	scores.Set("Ann", 30)
	scores.Set("Bob", 0)
	scores.Set("Ann", 45)

	assert.Equal(t, 45, scores.Get("Ann"))
	assert.Equal(t, 0, scores.Get("Bob"))
	assert.Equal(t, 0, scores.Get("Nobody"))
	assert.Len(t, scores, 2)
}

func TestScores_JSONKeepsOrder(t *testing.T) {
	scores := round.Scores{{Player: "Zed", Points: 10}, {Player: "Amy", Points: 0}, {Player: `Q "the" Q`, Points: 7}}

	data, err := json.Marshal(scores)
	require.NoError(t, err)
	assert.Equal(t, `{"Zed":10,"Amy":0,"Q \"the\" Q":7}`, string(data))

	var decoded round.Scores
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, scores, decoded)
}

func TestScores_UnmarshalRejectsNonObject(t *testing.T) {
	var scores round.Scores
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &scores))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &scores))

	require.NoError(t, json.Unmarshal([]byte(`null`), &scores))
	assert.Empty(t, scores)
}
