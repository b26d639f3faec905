package term

import "time"

// EventType tags a decoded key event.
type EventType int

const (
	// KeyChar is a printable (or control) byte delivered as-is.
	KeyChar EventType = iota
	// KeyEscape is a standalone Escape press (no sequence followed).
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyPageUp
	KeyPageDown
	// KeyResize reports that the terminal was resized while waiting for input.
	KeyResize
	// KeyUnknown is an escape sequence that was fully consumed but is not
	// actionable (modified keys, unrecognized CSI sequences).
	KeyUnknown
	// KeyEOF is end of input or an unrecoverable read failure.
	KeyEOF

	// keyNone is internal: a sequence that is fully transparent (mouse
	// reports). Never returned by ReadKey.
	keyNone
)

// Event is one decoded key press.
type Event struct {
	Type EventType
	Ch   byte // valid when Type == KeyChar
}

// Chr builds a printable-byte event.
func Chr(b byte) Event { return Event{Type: KeyChar, Ch: b} }

// Common byte values the selector reacts to.
const (
	ByteEnter     = '\r'
	ByteEscape    = 0x1b
	ByteBackspace = 0x7f
	ByteCtrlC     = 0x03
)

// escapeTimeout bounds the lookahead after a lone Escape byte. Real
// sequences arrive in one burst; a human releasing the Escape key does not.
const escapeTimeout = 100 * time.Millisecond

// byteSource abstracts where the decoder pulls bytes from, so the same
// state machine runs against the live terminal and against scripted input.
type byteSource interface {
	// readByte blocks for the next byte. ok is false at end of input.
	readByte() (b byte, ok bool)
	// lookahead waits at most escapeTimeout for the next byte.
	lookahead() (b byte, ok bool)
}

// decodeEscape classifies the sequence following an already-consumed Escape
// byte. It consumes exactly the bytes belonging to one sequence and nothing
// more, so the remaining stream stays aligned.
func decodeEscape(src byteSource) Event {
	b1, ok := src.lookahead()
	if !ok {
		return Event{Type: KeyEscape}
	}
	switch b1 {
	case '[':
		b2, ok := src.lookahead()
		if !ok {
			return Event{Type: KeyEscape}
		}
		return decodeCSI(src, b2)
	case 'O':
		b2, ok := src.lookahead()
		if !ok {
			return Event{Type: KeyEscape}
		}
		switch b2 {
		case 'H':
			return Event{Type: KeyHome}
		case 'F':
			return Event{Type: KeyEnd}
		}
		return Event{Type: KeyUnknown}
	}
	// Alt-modified byte; treated as a plain Escape press.
	return Event{Type: KeyEscape}
}

// decodeCSI classifies an ESC [ sequence whose first parameter byte is b.
func decodeCSI(src byteSource, b byte) Event {
	switch {
	case b == 'A':
		return Event{Type: KeyUp}
	case b == 'B':
		return Event{Type: KeyDown}
	case b == 'C':
		return Event{Type: KeyRight}
	case b == 'D':
		return Event{Type: KeyLeft}
	case b == 'H':
		return Event{Type: KeyHome}
	case b == 'F':
		return Event{Type: KeyEnd}
	case b >= '0' && b <= '9':
		return decodeCSINumber(src, b)
	case b == '<':
		// SGR mouse report: parameters terminated by M or m. Consumed and
		// discarded; mouse input is invisible to the caller.
		consumeUntilFinal(src)
		return Event{Type: keyNone}
	case b == 'M':
		// X10 mouse report: exactly three payload bytes follow.
		for i := 0; i < 3; i++ {
			if _, ok := src.readByte(); !ok {
				return Event{Type: KeyEOF}
			}
		}
		return Event{Type: keyNone}
	case isCSIFinal(b):
		return Event{Type: KeyUnknown}
	}
	consumeUntilFinal(src)
	return Event{Type: KeyUnknown}
}

// decodeCSINumber handles ESC [ <digit> ... sequences.
func decodeCSINumber(src byteSource, digit byte) Event {
	b, ok := src.readByte()
	if !ok {
		return Event{Type: KeyEOF}
	}
	switch {
	case b == '~':
		switch digit {
		case '1', '7':
			return Event{Type: KeyHome}
		case '3':
			return Event{Type: KeyDelete}
		case '4', '8':
			return Event{Type: KeyEnd}
		case '5':
			return Event{Type: KeyPageUp}
		case '6':
			return Event{Type: KeyPageDown}
		}
		return Event{Type: KeyUnknown}
	case b == ';':
		// Modified key (e.g. ESC [ 1 ; 5 C). Modifiers are not actionable
		// here; consume through the final letter so the stream stays aligned.
		consumeUntilFinal(src)
		return Event{Type: KeyUnknown}
	case isCSIFinal(b):
		return Event{Type: KeyUnknown}
	}
	consumeUntilFinal(src)
	return Event{Type: KeyUnknown}
}

// isCSIFinal reports whether b terminates a CSI sequence (0x40–0x7E).
func isCSIFinal(b byte) bool { return b >= '@' && b <= '~' }

func consumeUntilFinal(src byteSource) {
	for {
		b, ok := src.readByte()
		if !ok || isCSIFinal(b) {
			return
		}
	}
}
