package render

import (
	"io"
	"strings"
	"sync"

	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/logger"
)

// Notebook paints through an injected display handle when one is available
// and rewrites a single carriage-return line otherwise. Once the handle
// rejects an update it is abandoned for the rest of the session; the backend
// finishes on the fallback path instead of flickering between the two.
type Notebook struct {
	mu        sync.Mutex
	out       sink
	handle    DisplayHandle
	fallback  bool
	displayed bool
	painted   bool
	closed    bool
}

// NewNotebook returns a notebook backend. A nil handle starts the backend
// directly in fallback mode.
func NewNotebook(w io.Writer, h DisplayHandle) *Notebook {
	return &Notebook{out: sink{w: w}, handle: h, fallback: h == nil}
}

// Init is a no-op; notebook output needs no reserved rows.
func (n *Notebook) Init(lineCount int) error {
	return nil
}

// Paint publishes the joined block through the handle, or rewrites one
// flattened line when running without it. Multi-line content collapses with
// a " | " separator on the fallback path.
func (n *Notebook) Paint(lines []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.out.broken {
		return nil
	}
	content := strings.Join(lines, "\n")
	if !n.fallback {
		var err error
		if n.displayed {
			err = n.handle.Update(content)
		} else {
			err = n.handle.Display(content)
		}
		if err == nil {
			n.displayed = true
			return nil
		}
		n.fallback = true
		logger.WithErr(errors.Wrap(err, "render", "display handle rejected content"),
			"switching to carriage-return fallback")
	}
	n.painted = true
	return n.out.write("\r" + strings.ReplaceAll(content, "\n", " | "))
}

// Close terminates the fallback line with a newline. In handle mode the
// published display stays as-is and nothing is written.
func (n *Notebook) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return nil
	}
	n.closed = true
	if n.fallback && n.painted {
		_ = n.out.write("\n")
	}
	return nil
}
