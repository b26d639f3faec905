package tui

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sgrRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripEscapes(s string) string {
	return sgrRe.ReplaceAllString(s, "")
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"café", 4},
		{"\x1b[1mabc\x1b[0m", 3},
		{"📁 docs", 7},  // folder emoji is double width
		{"→", 1},        // arrows stay single width
		{"⚡", 2},        // symbol range is double width
		{Dark + "2025-11-29-" + resetFG, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayWidth(tt.input), "input %q", tt.input)
	}
}

func TestWriteLineFitsUntruncated(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(20)

	ls := s.Line()
	ls.Append("hello")
	s.WriteLine(ls, "…")

	assert.Equal(t, cursorHide+cursorHome+"hello"+clearEOL+lineBreak, out.String())
}

func TestWriteLineTruncatesWithMarker(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(10)

	ls := s.Line()
	ls.Append("abcdefghijklmnop")
	s.WriteLine(ls, "…")

	got := out.String()
	plain := stripEscapes(strings.TrimPrefix(got, cursorHide+cursorHome))
	plain = strings.TrimSuffix(plain, lineBreak)
	assert.Equal(t, "abcdefghi…", plain)
	assert.Contains(t, got, Reset+"…")
}

// For any content and budget, stripping escape sequences from the committed
// row must leave only complete, validly decoded codepoints.
func TestTruncationNeverSplitsCodepointsOrEscapes(t *testing.T) {
	inputs := []string{
		"plain ascii content",
		"café naïve résumé über",
		"📁 2025-11-29-project 🚀 restart ⚡ fast",
		Dark + "2025-11-29-" + resetFG + "pro" + Match + "ject" + resetFG,
		"mixed 📁" + Highlight + "böld" + boldOff + resetFG + "⚙ tail",
	}
	for _, input := range inputs {
		for budget := 0; budget <= DisplayWidth(input)+2; budget++ {
			var out bytes.Buffer
			s := NewScreen(&out, true)
			s.Begin(budget)
			ls := s.Line()
			ls.Append(input)
			s.WriteLine(ls, "…")

			plain := stripEscapes(out.String())
			require.True(t, utf8.ValidString(plain),
				"budget %d split a codepoint in %q: %q", budget, input, plain)
		}
	}
}

func TestLineSelectedAutoPops(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)

	ls := s.LineSelected()
	ls.Append("row")
	s.WriteLine(ls, "…")

	assert.Contains(t, out.String(), Selected+"row"+resetBG)
	assert.Equal(t, 0, ls.Depth())
}

func TestEmptyLine(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)
	s.Empty()
	assert.Equal(t, cursorHide+cursorHome+clearEOL+lineBreak, out.String())
}

func TestInputPlaceholderShownWhilePrefixMatches(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)

	ls := s.Line()
	ls.Append("Search: ")
	f := &InputField{Text: "pro", Cursor: 3, Placeholder: "project"}
	s.Input(ls, f)
	s.WriteLine(ls, "…")

	assert.Contains(t, out.String(), "pro"+Dim+"ject")
}

func TestInputPlaceholderHiddenOnDivergence(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)

	ls := s.Line()
	f := &InputField{Text: "prx", Cursor: 3, Placeholder: "project"}
	s.Input(ls, f)
	s.WriteLine(ls, "…")

	assert.NotContains(t, out.String(), "ject")
	assert.Contains(t, out.String(), "prx")
}

func TestInputRecordsCursorPosition(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)

	s.Empty() // row 1
	ls := s.Line()
	ls.Print(Dim, "Search: ") // 8 visible columns behind escape codes
	f := &InputField{Text: "ab", Cursor: 1}
	s.Input(ls, f)
	s.WriteLine(ls, "…")
	s.End()

	// Cursor parked on row 2, column 8 + 1 (cursor index) + 1 (1-based).
	assert.Contains(t, out.String(), "\x1b[2;10H")
	assert.True(t, strings.HasSuffix(out.String(), cursorShow))
}

func TestEndWithoutInputLeavesCursorAlone(t *testing.T) {
	var out bytes.Buffer
	s := NewScreen(&out, true)
	s.Begin(40)
	s.Empty()
	s.End()

	assert.NotContains(t, out.String(), ";")
	assert.True(t, strings.HasSuffix(out.String(), clearBelow+cursorShow))
}
