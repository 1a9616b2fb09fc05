package render

import (
	"io"
	"strings"
	"sync"
)

// Static serves writers with no cursor control, such as redirected files and
// CI logs. The block is emitted a single time and every later paint stays
// quiet, so a long run leaves one line in the log instead of one per
// refresh.
type Static struct {
	mu      sync.Mutex
	out     sink
	painted bool
}

// NewStatic returns a static backend writing to w.
func NewStatic(w io.Writer) *Static {
	return &Static{out: sink{w: w}}
}

// Init is a no-op; nothing is reserved for a single-shot block.
func (s *Static) Init(lineCount int) error {
	return nil
}

// Paint emits the block on the first call only.
func (s *Static) Paint(lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.painted {
		return nil
	}
	s.painted = true
	return s.out.write(strings.Join(lines, "\n") + "\n")
}

// Close is a no-op; the single emitted block already ends in a newline.
func (s *Static) Close() error {
	return nil
}
