package tui

import (
	"bytes"
	"fmt"
)

// ANSI sequences used across the UI.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Dark      = "\x1b[38;5;245m"
	Highlight = "\x1b[1;33m"
	Match     = "\x1b[38;5;11m"
	Selected  = "\x1b[48;5;237m"
	Danger    = "\x1b[48;5;52m"
	H1        = "\x1b[1;38;5;214m"

	resetFG = "\x1b[39m"
	resetBG = "\x1b[49m"
	boldOff = "\x1b[22m"
	dimOff  = "\x1b[22m"

	clearEOL    = "\x1b[K"
	clearBelow  = "\x1b[J"
	cursorHome  = "\x1b[H"
	cursorHide  = "\x1b[?25l"
	cursorShow  = "\x1b[?25h"
	lineBreak   = "\r\n"
)

// Flags categorizes which attributes a style string changes.
type Flags uint8

const (
	FlagFG Flags = 1 << iota
	FlagBG
	FlagBold
	FlagDim
)

// StyleFlags scans the numeric parameters of every CSI sequence in style and
// reports which attribute categories it touches.
func StyleFlags(style string) Flags {
	var flags Flags
	for i := 0; i < len(style); i++ {
		if style[i] != 0x1b || i+1 >= len(style) || style[i+1] != '[' {
			continue
		}
		i += 2
		for i < len(style) {
			code := 0
			for i < len(style) && style[i] >= '0' && style[i] <= '9' {
				code = code*10 + int(style[i]-'0')
				i++
			}
			switch {
			case code == 1:
				flags |= FlagBold
			case code == 2:
				flags |= FlagDim
			case (code >= 30 && code <= 39) || (code >= 90 && code <= 97):
				flags |= FlagFG
			case (code >= 40 && code <= 49) || (code >= 100 && code <= 107):
				flags |= FlagBG
			}
			if i < len(style) && style[i] == ';' {
				i++
				continue
			}
			break
		}
	}
	return flags
}

// maxStackDepth bounds style nesting. Pushes beyond it are dropped silently:
// a slightly miscolored row beats a crashed selector.
const maxStackDepth = 8

type styleFrame struct {
	style string
	flags Flags
}

// StyleString accumulates styled text into a buffer while tracking which
// attribute categories each nested style changed. Popping (or printing a
// transient style) resets exactly the touched categories and re-emits the
// styles still on the stack that set them, bottom to top, so the innermost
// remaining setting wins.
type StyleString struct {
	buf    *bytes.Buffer
	colors bool
	frames [maxStackDepth]styleFrame
	depth  int
}

// NewStyleString binds a style stack to buf. When colors is false nothing is
// emitted, but the stack bookkeeping runs unchanged so pushes and pops stay
// balanced with the colored path.
func NewStyleString(buf *bytes.Buffer, colors bool) *StyleString {
	return &StyleString{buf: buf, colors: colors}
}

// ActiveFlags returns the union of categories set by the frames currently on
// the stack.
func (ss *StyleString) ActiveFlags() Flags {
	var flags Flags
	for i := 0; i < ss.depth; i++ {
		flags |= ss.frames[i].flags
	}
	return flags
}

// Depth returns the current nesting depth.
func (ss *StyleString) Depth() int { return ss.depth }

// Push applies style and leaves it active until the matching Pop.
func (ss *StyleString) Push(style string) {
	if style == "" {
		return
	}
	if ss.depth >= maxStackDepth {
		return
	}
	ss.frames[ss.depth] = styleFrame{style: style, flags: StyleFlags(style)}
	ss.depth++
	if ss.colors {
		ss.buf.WriteString(style)
	}
}

// Pop removes the top style and reconciles the output: every category the
// removed frame touched is reset, then the remaining frames that also set
// one of those categories are replayed in stack order.
func (ss *StyleString) Pop() {
	if ss.depth == 0 {
		return
	}
	ss.depth--
	flags := ss.frames[ss.depth].flags
	if ss.colors && flags != 0 {
		ss.emitResets(flags)
		ss.reemit(flags)
	}
}

// Print writes text with style applied transiently: the style is not left on
// the stack, and the same reset-and-replay reconciliation as Pop runs after
// the text, even when text is empty.
func (ss *StyleString) Print(style, text string) {
	var flags Flags
	if ss.colors && style != "" {
		flags = StyleFlags(style)
		ss.buf.WriteString(style)
	}
	ss.buf.WriteString(text)
	if flags != 0 {
		ss.emitResets(flags)
		ss.reemit(flags)
	}
}

// Printf is Print with formatted text.
func (ss *StyleString) Printf(style, format string, args ...any) {
	ss.Print(style, fmt.Sprintf(format, args...))
}

// Append writes plain text with whatever styles are currently active.
func (ss *StyleString) Append(text string) {
	ss.buf.WriteString(text)
}

// AppendByte writes one plain byte.
func (ss *StyleString) AppendByte(b byte) {
	ss.buf.WriteByte(b)
}

// String returns the accumulated bytes.
func (ss *StyleString) String() string { return ss.buf.String() }

func (ss *StyleString) emitResets(flags Flags) {
	if flags&FlagBold != 0 {
		ss.buf.WriteString(boldOff)
	}
	if flags&FlagDim != 0 {
		ss.buf.WriteString(dimOff)
	}
	if flags&FlagFG != 0 {
		ss.buf.WriteString(resetFG)
	}
	if flags&FlagBG != 0 {
		ss.buf.WriteString(resetBG)
	}
}

func (ss *StyleString) reemit(flags Flags) {
	for i := 0; i < ss.depth; i++ {
		if ss.frames[i].flags&flags != 0 {
			ss.buf.WriteString(ss.frames[i].style)
		}
	}
}
