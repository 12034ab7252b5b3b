package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
)

const (
	seqClear      = "\033[2J\033[H"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// Screen redraws the watch-mode board. On a terminal every frame replaces
// the previous one; anywhere else frames are appended with a separator line.
type Screen struct {
	w   io.Writer
	tty bool
}

// NewScreen wraps w, detecting whether it is a terminal
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w, tty: isTerminal(w)}
}

// Begin hides the cursor for the lifetime of the screen
func (s *Screen) Begin() {
	if s.tty {
		_, _ = fmt.Fprint(s.w, seqHideCursor)
	}
}

// End restores the cursor
func (s *Screen) End() {
	if s.tty {
		_, _ = fmt.Fprint(s.w, seqShowCursor)
	}
}

// Frame draws one full board
func (s *Screen) Frame(draw func(w io.Writer)) {
	if s.tty {
		_, _ = fmt.Fprint(s.w, seqClear)
	} else {
		_, _ = fmt.Fprintln(s.w, "----")
	}
	draw(s.w)
}

// Clear wipes the screen, if there is one
func (s *Screen) Clear() {
	if s.tty {
		_, _ = fmt.Fprint(s.w, seqClear)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SignalContext returns a context cancelled on interrupt or SIGTERM
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
