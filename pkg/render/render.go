// Package render owns the terminal output strategies a progress session can
// draw through. A Backend reserves its lines once, repaints them in place as
// often as the session likes, and releases the cursor on close. The set of
// backends is closed; pickers return one of the three concrete types rather
// than letting callers supply their own.
package render

import (
	"io"

	"github.com/purrgress/purrgress/pkg/display"
	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/logger"
)

// Backend is the contract every output strategy satisfies. Init reserves
// space for a block of lineCount rows, Paint replaces the block, and Close
// releases the cursor so later output lands below the bar. A backend never
// propagates write failures past the first one; it degrades to a silent
// no-op and stays usable.
type Backend interface {
	Init(lineCount int) error
	Paint(lines []string) error
	Close() error
}

// DisplayHandle abstracts the rich-display channel a notebook frontend
// offers. Display publishes the block for the first time and Update replaces
// it in place. Implementations are supplied by the embedding environment;
// the library never fabricates one.
type DisplayHandle interface {
	Display(content string) error
	Update(content string) error
}

var (
	_ Backend = (*ANSI)(nil)
	_ Backend = (*Notebook)(nil)
	_ Backend = (*Static)(nil)
)

// ForSurface returns the backend matching a detected surface. A notebook
// surface without a handle still gets the notebook backend, which then runs
// in its carriage-return fallback mode. Auto is resolved by the caller
// before it gets here; treating it as static keeps the function total.
func ForSurface(s display.Surface, w io.Writer, h DisplayHandle) Backend {
	switch s {
	case display.SurfaceNotebook:
		return NewNotebook(w, h)
	case display.SurfaceANSI:
		return NewANSI(w)
	default:
		return NewStatic(w)
	}
}

// sink is the raw write path shared by the backends. The first failed write
// trips a latch: the failure is logged once, wrapped as a render error for
// the caller, and every later write becomes a silent no-op.
type sink struct {
	w      io.Writer
	broken bool
}

func (s *sink) write(text string) error {
	if s.broken {
		return nil
	}
	if _, err := io.WriteString(s.w, text); err != nil {
		s.broken = true
		wrapped := errors.Wrap(err, "render", "write failed")
		logger.WithErr(wrapped, "progress output degraded to no-op")
		return wrapped
	}
	return nil
}
