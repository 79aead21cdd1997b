package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID     string         `msgpack:"id"`
	Scores map[string]int `msgpack:"scores"`
}

func TestEncodeDecode(t *testing.T) {
	in := payload{ID: "abc", Scores: map[string]int{"Ann": 255}}
	data, err := Encode(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestDecode_Garbage(t *testing.T) {
	var out payload
	assert.Error(t, Decode([]byte{0xc1}, &out))
}

func TestMock_RecordsAndDecodes(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventRoundRecorded, "hello"))
	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EventRoundRecorded, calls[0].Topic)

	data, err := Encode(payload{ID: "x"})
	require.NoError(t, err)
	var out payload
	require.NoError(t, m.ProcessMessage(data, &out))
	assert.Equal(t, "x", out.ID)

	require.NoError(t, m.Close())
	assert.True(t, m.Closed)
}
