package tui

import (
	"bytes"
	"fmt"
	"io"
)

// Screen composes one frame at a time on top of an output stream. Every
// frame starts at the home position and overdraws the previous one line by
// line; the erase-to-end-of-line suffix on each committed row removes stale
// content without a full clear (which would flicker).
//
// None of the methods return errors: a failed write to the terminal has no
// useful recovery inside the composer and is the caller's concern.
type Screen struct {
	w      io.Writer
	colors bool

	cols int
	row  int

	lineBuf      bytes.Buffer
	line         *StyleString
	hasSelection bool

	cursorRow int
	cursorCol int
}

// NewScreen builds a composer over w. colors controls whether the style
// stack emits escape codes.
func NewScreen(w io.Writer, colors bool) *Screen {
	return &Screen{w: w, colors: colors}
}

// Colors reports whether styled emission is enabled.
func (s *Screen) Colors() bool { return s.colors }

// Begin starts a frame: hides the cursor, homes it, and captures the column
// budget used for truncation for the rest of the frame.
func (s *Screen) Begin(cols int) {
	s.cols = cols
	s.row = 1
	s.cursorRow = -1
	s.cursorCol = -1
	io.WriteString(s.w, cursorHide)
	io.WriteString(s.w, cursorHome)
}

// Line starts a fresh row and returns its style stack.
func (s *Screen) Line() *StyleString {
	s.lineBuf.Reset()
	s.hasSelection = false
	s.line = NewStyleString(&s.lineBuf, s.colors)
	return s.line
}

// LineSelected starts a row with the selection background pre-pushed. The
// frame is popped automatically when the row is written.
func (s *Screen) LineSelected() *StyleString {
	ls := s.Line()
	ls.Push(Selected)
	s.hasSelection = true
	return ls
}

// WriteLine commits the current row. Rows wider than the frame's column
// budget are cut at the last safe byte offset (never inside a codepoint or
// an escape sequence), fully reset, and suffixed with the overflow marker.
func (s *Screen) WriteLine(ls *StyleString, overflow string) {
	if s.hasSelection {
		ls.Pop()
		s.hasSelection = false
	}

	content := s.lineBuf.String()
	if DisplayWidth(content) <= s.cols {
		io.WriteString(s.w, content)
		io.WriteString(s.w, clearEOL+lineBreak)
		s.row++
		return
	}

	maxContent := s.cols - DisplayWidth(overflow)
	if maxContent < 0 {
		maxContent = 0
	}
	cut := truncateIndex(content, maxContent)
	io.WriteString(s.w, content[:cut])
	io.WriteString(s.w, Reset)
	io.WriteString(s.w, overflow)
	io.WriteString(s.w, clearEOL+lineBreak)
	s.row++
}

// Empty commits a blank row.
func (s *Screen) Empty() {
	io.WriteString(s.w, clearEOL+lineBreak)
	s.row++
}

// Input appends the field's text to the current row and records where the
// real cursor belongs for this frame. While the typed text is still a strict
// prefix of the placeholder, the rest of the placeholder is shown dimmed;
// the moment it diverges no placeholder text appears at all.
func (s *Screen) Input(ls *StyleString, f *InputField) {
	cursor := f.Cursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(f.Text) {
		cursor = len(f.Text)
	}

	s.cursorCol = s.visualColumn() + cursor + 1
	s.cursorRow = s.row

	ls.Append(f.Text)
	if f.Placeholder != "" && len(f.Text) < len(f.Placeholder) &&
		f.Placeholder[:len(f.Text)] == f.Text {
		ls.Print(Dim, f.Placeholder[len(f.Text):])
	}
}

// End finishes the frame: clears everything below the last committed row,
// parks the cursor at the recorded input position (if a field was drawn),
// and shows it again.
func (s *Screen) End() {
	io.WriteString(s.w, clearBelow)
	if s.cursorRow >= 0 && s.cursorCol >= 0 {
		fmt.Fprintf(s.w, "\x1b[%d;%dH", s.cursorRow, s.cursorCol)
	}
	io.WriteString(s.w, cursorShow)
}

// visualColumn counts the columns already occupied on the current row,
// skipping SGR sequences.
func (s *Screen) visualColumn() int {
	b := s.lineBuf.Bytes()
	col := 0
	for i := 0; i < len(b); i++ {
		if b[i] == 0x1b {
			for i < len(b) && b[i] != 'm' {
				i++
			}
			continue
		}
		col++
	}
	return col
}
