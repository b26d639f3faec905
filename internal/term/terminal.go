package term

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Control sequences owned by the controller.
const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
)

// emergencyRestore is pre-rendered so the signal path never allocates.
var emergencyRestore = []byte("\x1b[0m" + showCursor + leaveAltScreen)

// Terminal owns the raw-mode lifecycle of the controlling terminal and turns
// its byte stream into key events. The UI is drawn on the output stream
// (stderr in production) so stdout stays machine-readable.
type Terminal struct {
	in    io.Reader
	out   io.Writer
	inFd  int
	outFd int

	savedTermios *unix.Termios
	state        *term.State
	raw          bool
	alt          bool

	bytes      chan byte
	winch      chan os.Signal
	fatals     chan os.Signal
	readerOnce sync.Once
	signalOnce sync.Once

	width     int
	height    int
	sizeValid bool
}

// New builds a Terminal over stdin and stderr.
func New() *Terminal {
	t := NewWithStreams(os.Stdin, os.Stderr)
	t.inFd = int(os.Stdin.Fd())
	t.outFd = int(os.Stderr.Fd())
	return t
}

// NewWithStreams builds a Terminal over arbitrary streams. Raw-mode switching
// is skipped when the input is not a real terminal, which is what scripted
// tests want.
func NewWithStreams(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		in:    in,
		out:   out,
		inFd:  -1,
		outFd: -1,
		bytes: make(chan byte, 256),
		winch: make(chan os.Signal, 1),
	}
	signal.Notify(t.winch, unix.SIGWINCH)
	return t
}

// Out returns the stream the UI is drawn on.
func (t *Terminal) Out() io.Writer { return t.out }

// Enable captures the current terminal attributes and switches to raw input
// on the alternate screen. Signal hooks are installed before any state is
// mutated so an abnormal exit still restores the terminal. No-op when the
// attributes cannot be captured (non-interactive input).
func (t *Terminal) Enable() error {
	if t.raw || t.inFd < 0 {
		return nil
	}
	saved, err := unix.IoctlGetTermios(t.inFd, ioctlReadTermios)
	if err != nil {
		return nil
	}
	t.savedTermios = saved

	t.signalOnce.Do(func() {
		t.fatals = make(chan os.Signal, 1)
		signal.Notify(t.fatals, unix.SIGINT, unix.SIGTERM, unix.SIGQUIT, unix.SIGHUP)
		go func() {
			<-t.fatals
			t.EmergencyCleanup()
			os.Exit(130)
		}()
	})

	state, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.state = state
	t.raw = true

	io.WriteString(t.out, enterAltScreen)
	io.WriteString(t.out, hideCursor)
	t.alt = true
	return nil
}

// Disable restores the saved attributes, shows the cursor and leaves the
// alternate screen. Safe to call any number of times, on any exit path.
func (t *Terminal) Disable() {
	if t.raw {
		_ = term.Restore(t.inFd, t.state)
		t.raw = false
	}
	if t.alt {
		io.WriteString(t.out, showCursor)
		io.WriteString(t.out, leaveAltScreen)
		t.alt = false
	}
}

// EmergencyCleanup restores the terminal from the fatal-signal path. It runs
// concurrently with whatever the process was doing, so it touches only
// pre-allocated buffers and issues direct syscalls.
func (t *Terminal) EmergencyCleanup() {
	if t.outFd >= 0 {
		_, _ = unix.Write(t.outFd, emergencyRestore)
	}
	if t.savedTermios != nil {
		_ = unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, t.savedTermios)
	}
}

// startReader launches the single goroutine that pumps input bytes into the
// decode channel. Bytes never bypass the channel, so a resize arriving
// mid-burst cannot reorder or drop pending input.
func (t *Terminal) startReader() {
	t.readerOnce.Do(func() {
		go func() {
			buf := make([]byte, 64)
			for {
				n, err := t.in.Read(buf)
				for i := 0; i < n; i++ {
					t.bytes <- buf[i]
				}
				if err != nil {
					close(t.bytes)
					return
				}
			}
		}()
	})
}

func (t *Terminal) readByte() (byte, bool) {
	b, ok := <-t.bytes
	return b, ok
}

func (t *Terminal) lookahead() (byte, bool) {
	select {
	case b, ok := <-t.bytes:
		return b, ok
	case <-time.After(escapeTimeout):
		return 0, false
	}
}

// ReadKey blocks until one key event is available. A resize signal delivered
// while waiting yields KeyResize (and invalidates the cached window size);
// end of input yields KeyEOF. Escape-initiated sequences are classified per
// decodeEscape; mouse reports are consumed invisibly.
func (t *Terminal) ReadKey() Event {
	t.startReader()
	for {
		select {
		case b, ok := <-t.bytes:
			if !ok {
				return Event{Type: KeyEOF}
			}
			if b != ByteEscape {
				return Chr(b)
			}
			ev := decodeEscape(t)
			if ev.Type == keyNone {
				continue
			}
			return ev
		case <-t.winch:
			t.InvalidateSize()
			return Event{Type: KeyResize}
		}
	}
}
