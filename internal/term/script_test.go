package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScriptSymbolic(t *testing.T) {
	events, err := ParseScript("p,r,o,ENTER")
	require.NoError(t, err)
	assert.Equal(t, []Event{Chr('p'), Chr('r'), Chr('o'), Chr(ByteEnter)}, events)

	events, err = ParseScript("DOWN,DOWN,UP,ESC")
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Type: KeyDown}, {Type: KeyDown}, {Type: KeyUp}, {Type: KeyEscape},
	}, events)
}

// Every symbolic token must yield the event the live decoder produces for
// the matching physical key bytes.
func TestParseScriptMatchesDecoder(t *testing.T) {
	pairs := []struct {
		token string
		bytes string
	}{
		{"ENTER", "\r"},
		{"TAB", "\t"},
		{"SPACE", " "},
		{"BACKSPACE", "\x7f"},
		{"BS", "\x7f"},
		{"UP", "\x1b[A"},
		{"DOWN", "\x1b[B"},
		{"LEFT", "\x1b[D"},
		{"RIGHT", "\x1b[C"},
		{"ESC", "\x1b"},
		{"CTRL-C", "\x03"},
		{"CTRL-D", "\x04"},
		{"CTRL-W", "\x17"},
		{"a", "a"},
		{"Z", "Z"},
		{"-", "-"},
	}

	for _, p := range pairs {
		t.Run(p.token, func(t *testing.T) {
			fromScript, err := ParseScript(p.token)
			require.NoError(t, err)
			fromDecoder := DecodeBytes([]byte(p.bytes))
			assert.Equal(t, fromDecoder, fromScript)
		})
	}
}

func TestParseScriptLegacyRawBytes(t *testing.T) {
	// Raw escape sequences and control bytes are the legacy form.
	events, err := ParseScript("pro\x1b[B\r")
	require.NoError(t, err)
	assert.Equal(t, []Event{
		Chr('p'), Chr('r'), Chr('o'), {Type: KeyDown}, Chr(ByteEnter),
	}, events)

	// Plain words without commas fall back to literal typed characters.
	events, err = ParseScript("abc")
	require.NoError(t, err)
	assert.Equal(t, []Event{Chr('a'), Chr('b'), Chr('c')}, events)
}

func TestParseScriptEmpty(t *testing.T) {
	events, err := ParseScript("")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := parseToken("CTRL-42")
	assert.Error(t, err)
	_, err = parseToken("WOBBLE")
	assert.Error(t, err)
}
