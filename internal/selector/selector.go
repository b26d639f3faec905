// Package selector runs the interactive directory picker: a synchronous
// render-then-react loop over the raw terminal, scoring candidates with the
// fuzzy matcher and returning the action the user chose.
package selector

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"trysel/internal/fuzzy"
	"trysel/internal/scan"
	"trysel/internal/term"
	"trysel/internal/tui"
)

// Action is what the caller should do with the result.
type Action int

const (
	// ActionCancel means the user backed out; emit nothing.
	ActionCancel Action = iota
	// ActionCd means change into Result.Path after touching it.
	ActionCd
	// ActionCreate means create Result.Path, then change into it.
	ActionCreate
	// ActionDelete means remove every path in Result.Deleted.
	ActionDelete
)

// Result is the outcome of a selector run.
type Result struct {
	Action  Action
	Path    string
	Deleted []string
}

// Options configures a run.
type Options struct {
	BasePath      string
	InitialFilter string
	Colors        bool

	// MetaMargin is the minimum gap kept between an entry name and its
	// right-aligned metadata; MetaMinOverlap is how many metadata columns a
	// partial layout must keep before the metadata is hidden instead.
	MetaMargin     int
	MetaMinOverlap int

	// RenderOnce draws a single frame and returns ActionCancel.
	RenderOnce bool
	// Keys, when non-nil, replaces the live decoder: events are consumed in
	// order with a render before each one, and exhaustion cancels.
	Keys []term.Event

	Logger *log.Logger
	Now    func() time.Time
}

type entry struct {
	name    string
	path    string
	modTime time.Time
	score   float64
	display string
}

// Selector holds the loop state for one run.
type Selector struct {
	t      *term.Terminal
	opts   Options
	scorer fuzzy.Scorer
	logger *log.Logger
	now    func() time.Time

	entries  []entry
	filtered []*entry
	field    tui.InputField
	selected int
	scroll   int
	marks    map[string]bool
}

// New builds a selector bound to t.
func New(t *term.Terminal, opts Options) *Selector {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Selector{
		t:      t,
		opts:   opts,
		scorer: fuzzy.Scorer{Colors: opts.Colors},
		logger: opts.Logger,
		now:    opts.Now,
		field: tui.InputField{
			Text:        opts.InitialFilter,
			Cursor:      len(opts.InitialFilter),
			Placeholder: "type to filter or create",
		},
		marks: make(map[string]bool),
	}
}

// Run scans the base path and drives the render/react loop until the user
// picks an action or input ends.
func (s *Selector) Run() (Result, error) {
	found, err := scan.Entries(s.opts.BasePath)
	if err != nil {
		return Result{Action: ActionCancel}, err
	}
	s.entries = make([]entry, len(found))
	for i, f := range found {
		s.entries[i] = entry{name: f.Name, path: f.Path, modTime: f.ModTime}
	}
	s.refilter()

	scr := tui.NewScreen(s.t.Out(), s.opts.Colors)

	if s.opts.RenderOnce {
		s.render(scr)
		return Result{Action: ActionCancel}, nil
	}

	live := s.opts.Keys == nil
	if live {
		if err := s.t.Enable(); err != nil {
			return Result{Action: ActionCancel}, err
		}
		defer s.t.Disable()
	}

	keyIdx := 0
	for {
		s.render(scr)

		var ev term.Event
		if live {
			ev = s.t.ReadKey()
		} else {
			if keyIdx >= len(s.opts.Keys) {
				return Result{Action: ActionCancel}, nil
			}
			ev = s.opts.Keys[keyIdx]
			keyIdx++
		}
		s.logger.Debug("key", "type", ev.Type, "ch", ev.Ch)

		if res, done := s.react(ev); done {
			return res, nil
		}
	}
}

// react applies one key event. done is true when the loop should return res.
func (s *Selector) react(ev term.Event) (res Result, done bool) {
	switch ev.Type {
	case term.KeyResize:
		return Result{}, false
	case term.KeyEOF:
		return Result{Action: ActionCancel}, true
	case term.KeyEscape:
		return s.cancelOrUnmark()
	case term.KeyUp:
		if s.selected > 0 {
			s.selected--
		}
		return Result{}, false
	case term.KeyDown:
		if s.selected < s.maxIndex() {
			s.selected++
		}
		return Result{}, false
	case term.KeyChar:
		switch ev.Ch {
		case term.ByteCtrlC:
			return s.cancelOrUnmark()
		case term.ByteEnter:
			return s.confirm()
		case 0x04: // Ctrl-D
			s.toggleMark()
			return Result{}, false
		}
	}

	if _, changed := s.field.HandleKey(ev); changed {
		s.refilter()
	}
	return Result{}, false
}

// cancelOrUnmark clears pending delete marks first; a second cancel exits.
func (s *Selector) cancelOrUnmark() (Result, bool) {
	if len(s.marks) > 0 {
		s.marks = make(map[string]bool)
		return Result{}, false
	}
	return Result{Action: ActionCancel}, true
}

// confirm resolves Enter: pending marks win, then the highlighted entry,
// then the create row.
func (s *Selector) confirm() (Result, bool) {
	if len(s.marks) > 0 {
		deleted := make([]string, 0, len(s.marks))
		for _, e := range s.filtered {
			if s.marks[e.path] {
				deleted = append(deleted, e.path)
			}
		}
		return Result{Action: ActionDelete, Deleted: deleted}, true
	}
	if s.selected < len(s.filtered) {
		return Result{Action: ActionCd, Path: s.filtered[s.selected].path}, true
	}
	if s.field.Text != "" {
		name := s.now().Format("2006-01-02") + "-" + s.field.Text
		name = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' {
				return '-'
			}
			return r
		}, name)
		return Result{Action: ActionCreate, Path: s.opts.BasePath + "/" + name}, true
	}
	return Result{}, false
}

func (s *Selector) toggleMark() {
	if s.selected >= len(s.filtered) {
		return
	}
	path := s.filtered[s.selected].path
	if s.marks[path] {
		delete(s.marks, path)
	} else {
		s.marks[path] = true
	}
}

// maxIndex is the last selectable row: the create row counts when the
// filter is non-empty.
func (s *Selector) maxIndex() int {
	max := len(s.filtered) - 1
	if s.field.Text != "" {
		max++
	}
	if max < 0 {
		max = 0
	}
	return max
}

// refilter rescores every entry against the current filter, drops
// non-matches (unless the filter is empty) and sorts by score, best first.
func (s *Selector) refilter() {
	now := s.now()
	query := s.field.Text
	s.filtered = s.filtered[:0]
	for i := range s.entries {
		e := &s.entries[i]
		r := s.scorer.Match(e.name, query, e.modTime, now)
		e.score = r.Score
		e.display = r.Display
		if query != "" && e.score <= 0 {
			continue
		}
		s.filtered = append(s.filtered, e)
	}
	sort.SliceStable(s.filtered, func(i, j int) bool {
		return s.filtered[i].score > s.filtered[j].score
	})
	if s.selected > s.maxIndex() {
		s.selected = 0
	}
}
