package selector

import (
	"fmt"
	"strings"
	"time"

	"trysel/internal/tui"
)

// chrome is the number of fixed rows around the entry list: header, three
// separators, the search row and the footer. One extra row stays free so
// writing the footer's line break never scrolls the frame.
const chrome = 6

const entryPrefixWidth = 5 // "→ 📁 " or "  📁 "

// render draws one full frame.
func (s *Selector) render(scr *tui.Screen) {
	cols, rows := s.t.WindowSize()
	scr.Begin(cols)

	ls := scr.Line()
	ls.Print(tui.H1, "📁 Try Directory Selection")
	scr.WriteLine(ls, "")

	s.separator(scr, cols)

	ls = scr.Line()
	ls.Print(tui.Bold, "Search: ")
	scr.Input(ls, &s.field)
	scr.WriteLine(ls, "…")

	s.separator(scr, cols)

	listHeight := rows - chrome - 1
	if listHeight < 1 {
		listHeight = 1
	}
	if s.selected < s.scroll {
		s.scroll = s.selected
	}
	if s.selected >= s.scroll+listHeight {
		s.scroll = s.selected - listHeight + 1
	}

	for i := 0; i < listHeight; i++ {
		idx := s.scroll + i
		switch {
		case idx < len(s.filtered):
			s.renderEntry(scr, s.filtered[idx], idx == s.selected, cols)
		case idx == len(s.filtered) && s.field.Text != "":
			s.renderCreateRow(scr, idx == s.selected)
		default:
			scr.Empty()
		}
	}

	s.separator(scr, cols)

	ls = scr.Line()
	ls.Print(tui.Dark, "↑/↓: Navigate  Enter: Select  Ctrl-D: Mark delete  ESC: Cancel")
	scr.WriteLine(ls, "")

	scr.End()
}

func (s *Selector) separator(scr *tui.Screen, cols int) {
	ls := scr.Line()
	ls.Print(tui.Dark, strings.Repeat("─", cols))
	scr.WriteLine(ls, "")
}

// renderEntry draws one candidate row: prefix, highlighted name, then the
// right-aligned "relative-time, score" metadata laid out per metaLayout.
func (s *Selector) renderEntry(scr *tui.Screen, e *entry, selected bool, cols int) {
	var ls *tui.StyleString
	if selected {
		ls = scr.LineSelected()
	} else {
		ls = scr.Line()
	}
	marked := s.marks[e.path]
	if marked {
		ls.Push(tui.Danger)
	}

	if selected {
		ls.Print(tui.Bold, "→ ")
	} else {
		ls.Append("  ")
	}
	ls.Append("📁 ")
	ls.Append(e.display)

	meta := relativeTime(s.now().Sub(e.modTime)) + fmt.Sprintf(", %.1f", e.score)
	nameWidth := tui.DisplayWidth(e.display)
	pad, visible := s.metaLayout(cols, nameWidth, meta)
	if visible != "" {
		ls.Append(strings.Repeat(" ", pad))
		ls.Print(tui.Dark, visible)
	}

	if marked {
		ls.Pop()
	}
	scr.WriteLine(ls, "…")
}

func (s *Selector) renderCreateRow(scr *tui.Screen, selected bool) {
	var ls *tui.StyleString
	if selected {
		ls = scr.LineSelected()
		ls.Print(tui.Bold, "→ ")
	} else {
		ls = scr.Line()
		ls.Append("  ")
	}
	ls.Append("+ Create new: ")
	ls.Print(tui.Highlight, s.field.Text)
	scr.WriteLine(ls, "…")
}

// metaLayout decides how much of the metadata survives on a row already
// occupied by the entry name. Full layout needs the metadata plus the
// configured margin to fit; otherwise the metadata is cut from the left as
// long as at least MetaMinOverlap columns remain visible; otherwise hidden.
func (s *Selector) metaLayout(cols, nameWidth int, meta string) (pad int, visible string) {
	free := cols - entryPrefixWidth - nameWidth
	if free >= len(meta)+s.opts.MetaMargin {
		return free - len(meta), meta
	}
	keep := free - 1
	if keep >= s.opts.MetaMinOverlap && keep > 0 {
		if keep > len(meta) {
			keep = len(meta)
		}
		return 1, meta[len(meta)-keep:]
	}
	return 0, ""
}

// relativeTime renders an age the way users read it in the list.
func relativeTime(age time.Duration) string {
	switch secs := int64(age.Seconds()); {
	case secs < 60:
		return "just now"
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}
