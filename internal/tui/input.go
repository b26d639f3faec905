package tui

import "trysel/internal/term"

// InputField is an editable text buffer with a cursor and an optional
// placeholder. The cursor is clamped to [0, len(Text)] by every operation.
type InputField struct {
	Text        string
	Cursor      int
	Placeholder string
}

// Clear empties the field.
func (f *InputField) Clear() {
	f.Text = ""
	f.Cursor = 0
}

// HandleKey applies one key event to the field using the usual emacs-style
// line editing set. It reports whether the event was consumed, and whether
// the text changed (cursor-only moves return handled=true, changed=false).
func (f *InputField) HandleKey(ev term.Event) (handled, changed bool) {
	switch ev.Type {
	case term.KeyLeft:
		f.moveLeft()
		return true, false
	case term.KeyRight:
		f.moveRight()
		return true, false
	case term.KeyHome:
		f.Cursor = 0
		return true, false
	case term.KeyEnd:
		f.Cursor = len(f.Text)
		return true, false
	case term.KeyDelete:
		if f.Cursor < len(f.Text) {
			f.Text = f.Text[:f.Cursor] + f.Text[f.Cursor+1:]
			return true, true
		}
		return true, false
	case term.KeyChar:
		return f.handleByte(ev.Ch)
	}
	return false, false
}

func (f *InputField) handleByte(b byte) (handled, changed bool) {
	switch b {
	case 0x01: // Ctrl-A
		f.Cursor = 0
		return true, false
	case 0x05: // Ctrl-E
		f.Cursor = len(f.Text)
		return true, false
	case 0x02: // Ctrl-B
		f.moveLeft()
		return true, false
	case 0x06: // Ctrl-F
		f.moveRight()
		return true, false
	case term.ByteBackspace, 0x08:
		if f.Cursor > 0 {
			f.Text = f.Text[:f.Cursor-1] + f.Text[f.Cursor:]
			f.Cursor--
			return true, true
		}
		return true, false
	case 0x0b: // Ctrl-K: kill to end
		if f.Cursor < len(f.Text) {
			f.Text = f.Text[:f.Cursor]
			return true, true
		}
		return true, false
	case 0x15: // Ctrl-U: kill to start
		if f.Cursor > 0 {
			f.Text = f.Text[f.Cursor:]
			f.Cursor = 0
			return true, true
		}
		return true, false
	case 0x17: // Ctrl-W: kill previous word
		if f.Cursor == 0 {
			return true, false
		}
		start := f.Cursor - 1
		for start >= 0 && !isWordByte(f.Text[start]) {
			start--
		}
		for start >= 0 && isWordByte(f.Text[start]) {
			start--
		}
		start++
		f.Text = f.Text[:start] + f.Text[f.Cursor:]
		f.Cursor = start
		return true, true
	}
	if b >= 0x20 && b < 0x7f {
		f.Text = f.Text[:f.Cursor] + string(b) + f.Text[f.Cursor:]
		f.Cursor++
		return true, true
	}
	return false, false
}

func (f *InputField) moveLeft() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

func (f *InputField) moveRight() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
