// Package report provides step-oriented task reporting for work that is not
// a plain item loop: named phases with a spinner in interactive terminals
// and plain log lines under CI. It complements the progress package, which
// owns the per-item cat bar.
package report

import (
	"io"
	"os"
	"time"
)

// Reporter is the contract for phase-level progress reporting.
type Reporter interface {
	Begin(message string) error
	Update(step, total int, message string) error
	Complete(message string) error
	Fail(message string, err error) error
	Close() error
}

// Option configures a Task reporter.
type Option func(*Task)

// WithWriter directs output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(t *Task) { t.w = w }
}

// WithThrottle sets the minimum gap between consecutive update lines. The
// final step always goes through.
func WithThrottle(d time.Duration) Option {
	return func(t *Task) { t.throttle = d }
}

// WithTraceID pins the correlation ID instead of generating one.
func WithTraceID(traceID string) Option {
	return func(t *Task) { t.traceID = traceID }
}

// WithHeartbeat emits a plain-mode keepalive line every d during long quiet
// stretches. Zero disables it.
func WithHeartbeat(d time.Duration) Option {
	return func(t *Task) { t.heartbeat = d }
}

// WithTrackWidth sets the width of the inline paw track.
func WithTrackWidth(width int) Option {
	return func(t *Task) { t.trackWidth = width }
}

// WithPlainOutput forces line-based output even on a terminal, as used
// under CI.
func WithPlainOutput(plain bool) Option {
	return func(t *Task) { t.plain = plain }
}

// WithClock substitutes the time source.
func WithClock(clock func() time.Time) Option {
	return func(t *Task) { t.clock = clock }
}

// inCI reports whether the process runs under a CI system.
func inCI() bool {
	return os.Getenv("CI") == "true"
}
