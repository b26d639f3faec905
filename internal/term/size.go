package term

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Environment overrides for reproducible rendering in tests. EnvWidth forces
// the column count; EnvHeight (together with EnvWidth) forces both axes.
const (
	EnvWidth  = "TRYSEL_WIDTH"
	EnvHeight = "TRYSEL_HEIGHT"
)

// WindowSize returns the terminal dimensions in columns and rows. Resolution
// order: environment overrides, device query, `tput`, then a fixed 80x24.
// The result is cached until InvalidateSize is called (which ReadKey does
// when a resize signal arrives), so it never returns stale dimensions after
// a resize.
func (t *Terminal) WindowSize() (cols, rows int) {
	if t.sizeValid {
		return t.width, t.height
	}

	cols = envDimension(EnvWidth)
	rows = envDimension(EnvHeight)

	if cols == 0 || rows == 0 {
		if w, h, err := term.GetSize(t.outFd); err == nil && w > 0 {
			if cols == 0 {
				cols = w
			}
			if rows == 0 {
				rows = h
			}
		}
	}
	if cols == 0 {
		cols = tputDimension("cols")
	}
	if rows == 0 {
		rows = tputDimension("lines")
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	t.width, t.height = cols, rows
	t.sizeValid = true
	return cols, rows
}

// InvalidateSize drops the cached dimensions so the next WindowSize call
// queries the terminal again.
func (t *Terminal) InvalidateSize() {
	t.sizeValid = false
}

func envDimension(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func tputDimension(what string) int {
	out, err := exec.Command("tput", what).Output()
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0
	}
	return n
}
