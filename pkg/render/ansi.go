package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ANSI repaints a fixed block of rows in place using cursor-previous-line
// and erase-line sequences. The rows are reserved once by emitting that many
// newlines, so the block scrolls with surrounding output and the cursor
// parks on the row below it after every paint.
type ANSI struct {
	mu          sync.Mutex
	out         sink
	rows        int
	initialized bool
	closed      bool
}

// NewANSI returns an ANSI backend writing to w.
func NewANSI(w io.Writer) *ANSI {
	return &ANSI{out: sink{w: w}}
}

// Init reserves lineCount rows below the current cursor position. Calling
// it again is a no-op; the block height is fixed for the life of the
// backend.
func (a *ANSI) Init(lineCount int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initLocked(lineCount)
}

func (a *ANSI) initLocked(lineCount int) error {
	if a.initialized {
		return nil
	}
	if lineCount < 1 {
		lineCount = 1
	}
	a.rows = lineCount
	a.initialized = true
	return a.out.write(strings.Repeat("\n", lineCount))
}

// Paint rewrites the whole block. Short frames are padded with blank rows
// and long ones truncated, so the cursor math never drifts.
func (a *ANSI) Paint(lines []string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || a.out.broken {
		return nil
	}
	if !a.initialized {
		if err := a.initLocked(len(lines)); err != nil {
			return err
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\x1b[%dF", a.rows)
	for i := 0; i < a.rows; i++ {
		b.WriteString("\x1b[2K")
		if i < len(lines) {
			b.WriteString(lines[i])
		}
		b.WriteString("\n")
	}
	return a.out.write(b.String())
}

// Close writes the separating newline below the block. Safe to call more
// than once; only the first call emits anything.
func (a *ANSI) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if !a.initialized {
		return nil
	}
	_ = a.out.write("\n")
	return nil
}
