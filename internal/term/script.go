package term

import (
	"fmt"
	"strings"
)

// sliceSource feeds the escape-sequence classifier from a byte slice. The
// lookahead never waits: scripted input is either all there or it is not,
// which models the "no further byte arrived" branch of the live decoder.
type sliceSource struct {
	data []byte
	pos  int
}

func (s *sliceSource) readByte() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	return b, true
}

func (s *sliceSource) lookahead() (byte, bool) { return s.readByte() }

// DecodeBytes runs the key decoder over a raw byte string and returns every
// event it produces, in order. This is the legacy scripted-input form: the
// exact bytes a terminal would deliver.
func DecodeBytes(data []byte) []Event {
	src := &sliceSource{data: data}
	var events []Event
	for {
		b, ok := src.readByte()
		if !ok {
			return events
		}
		var ev Event
		if b == ByteEscape {
			ev = decodeEscape(src)
		} else {
			ev = Chr(b)
		}
		if ev.Type == keyNone || ev.Type == KeyEOF {
			continue
		}
		events = append(events, ev)
	}
}

// ParseScript turns a scripted key description into events. Two forms are
// accepted: a comma-separated symbolic script ("ENTER", "ESC", "UP", "DOWN",
// "LEFT", "RIGHT", "BACKSPACE"/"BS", "TAB", "SPACE", "CTRL-<letter>", or a
// single literal character), or a legacy raw byte string. Both yield exactly
// the events the live decoder would produce for the same key presses.
func ParseScript(s string) ([]Event, error) {
	if s == "" {
		return nil, nil
	}
	if hasControlBytes(s) {
		return DecodeBytes([]byte(s)), nil
	}
	events, err := parseSymbolic(s)
	if err != nil {
		// Not the symbolic grammar; treat as literal typed bytes.
		return DecodeBytes([]byte(s)), nil
	}
	return events, nil
}

func hasControlBytes(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == ByteBackspace {
			return true
		}
	}
	return false
}

func parseSymbolic(s string) ([]Event, error) {
	tokens := strings.Split(s, ",")
	events := make([]Event, 0, len(tokens))
	for _, tok := range tokens {
		ev, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseToken(tok string) (Event, error) {
	switch strings.ToUpper(tok) {
	case "ENTER":
		return Chr(ByteEnter), nil
	case "ESC", "ESCAPE":
		return Event{Type: KeyEscape}, nil
	case "UP":
		return Event{Type: KeyUp}, nil
	case "DOWN":
		return Event{Type: KeyDown}, nil
	case "LEFT":
		return Event{Type: KeyLeft}, nil
	case "RIGHT":
		return Event{Type: KeyRight}, nil
	case "BACKSPACE", "BS":
		return Chr(ByteBackspace), nil
	case "TAB":
		return Chr('\t'), nil
	case "SPACE":
		return Chr(' '), nil
	}
	upper := strings.ToUpper(tok)
	if strings.HasPrefix(upper, "CTRL-") && len(upper) == len("CTRL-")+1 {
		c := upper[len("CTRL-")]
		if c >= 'A' && c <= 'Z' {
			return Chr(c - 'A' + 1), nil
		}
		return Event{}, fmt.Errorf("bad control key %q", tok)
	}
	if len(tok) == 1 && tok[0] >= 0x20 && tok[0] < 0x7f {
		return Chr(tok[0]), nil
	}
	return Event{}, fmt.Errorf("unknown key token %q", tok)
}
