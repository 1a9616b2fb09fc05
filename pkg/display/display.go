// Package display resolves where progress output is going: a notebook-style
// host that can update rich output in place, an interactive terminal that
// honors cursor movement, or a plain stream that gets printed to once.
package display

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/logger"
)

// Surface identifies the rendering strategy for one session. It is
// resolved once when a session opens and never re-resolved mid-session.
type Surface int

const (
	// SurfaceAuto asks the probe to decide. It is a configuration value
	// only; Detect never returns it.
	SurfaceAuto Surface = iota
	// SurfaceNotebook updates a persistent rich-output slot in place.
	SurfaceNotebook
	// SurfaceANSI redraws a block of terminal rows with cursor movement.
	SurfaceANSI
	// SurfaceStatic prints once and never redraws.
	SurfaceStatic
)

// String returns the surface name.
func (s Surface) String() string {
	switch s {
	case SurfaceAuto:
		return "auto"
	case SurfaceNotebook:
		return "notebook"
	case SurfaceANSI:
		return "ansi"
	case SurfaceStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ParseSurface converts a name to a Surface. Unrecognized names resolve
// to SurfaceAuto.
func ParseSurface(name string) Surface {
	switch name {
	case "notebook":
		return SurfaceNotebook
	case "ansi":
		return SurfaceANSI
	case "static":
		return SurfaceStatic
	default:
		return SurfaceAuto
	}
}

// Option overrides one of the probe's capability checks.
type Option func(*probe)

// WithNotebookCheck replaces the notebook-kernel check. Hosts that can
// introspect their runtime (an embedded kernel, a GUI shell) inject the
// real check here; by default no notebook capability is assumed.
func WithNotebookCheck(check func() bool) Option {
	return func(p *probe) { p.notebook = check }
}

// WithTerminalCheck replaces the in-place-redraw check, which normally
// asks the writer whether it is an interactive terminal device.
func WithTerminalCheck(check func(io.Writer) bool) Option {
	return func(p *probe) { p.terminal = check }
}

type probe struct {
	notebook func() bool
	terminal func(io.Writer) bool
}

// Detect resolves the surface for w. Notebook capability wins over a
// terminal, a terminal wins over a plain stream. Detection never fails: a
// check that errors or panics counts as "capability absent".
func Detect(w io.Writer, opts ...Option) Surface {
	p := &probe{
		notebook: func() bool { return false },
		terminal: IsTerminal,
	}
	for _, o := range opts {
		o(p)
	}
	if safeCheck("notebook", p.notebook) {
		return SurfaceNotebook
	}
	if safeCheck("terminal", func() bool { return p.terminal(w) }) {
		return SurfaceANSI
	}
	return SurfaceStatic
}

// safeCheck runs an injected capability check, converting a panic into
// "absent".
func safeCheck(name string, check func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.Environmentf("display", "%s check panicked: %v", name, r)
			logger.WithErr(err, "probe check failed")
			ok = false
		}
	}()
	return check()
}

type fdWriter interface {
	Fd() uintptr
}

type statWriter interface {
	Stat() (os.FileInfo, error)
}

// IsTerminal reports whether w is attached to an interactive terminal
// device that will honor cursor-repositioning sequences.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if s, ok := w.(statWriter); ok {
		info, err := s.Stat()
		if err != nil {
			return false
		}
		if info.Mode()&os.ModeCharDevice == 0 {
			return false
		}
	}
	return true
}

// Width returns the column count of the terminal behind w. Falls back to
// the COLUMNS environment variable, then to 80.
func Width(w io.Writer) int {
	if f, ok := w.(fdWriter); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if raw := os.Getenv("COLUMNS"); raw != "" {
		if cols, err := strconv.Atoi(raw); err == nil && cols > 0 {
			return cols
		}
	}
	return 80
}
