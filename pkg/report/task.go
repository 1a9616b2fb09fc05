package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"

	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/frames"
)

var _ Reporter = (*Task)(nil)

// Task reports one long-running job. Interactive runs get a spinner whose
// suffix carries a paw track and a cycling cat face; plain runs (CI, or
// when forced) get one line per event. Every task carries a trace ID for
// correlating its lines with other logs.
type Task struct {
	mu sync.Mutex

	w          io.Writer
	spin       *spinner.Spinner
	plain      bool
	traceID    string
	throttle   time.Duration
	heartbeat  time.Duration
	trackWidth int
	clock      func() time.Time
	faces      []string

	start  time.Time
	last   time.Time
	step   int
	total  int
	begun  bool
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTask builds a reporter for one job. The context bounds the heartbeat
// goroutine when one is enabled.
func NewTask(ctx context.Context, opts ...Option) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		w:          os.Stdout,
		plain:      inCI(),
		traceID:    uuid.New().String(),
		throttle:   100 * time.Millisecond,
		trackWidth: 20,
		clock:      time.Now,
		faces:      frames.ActivityFrames("loading"),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, o := range opts {
		o(t)
	}
	if !t.plain {
		t.spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(t.w))
		_ = t.spin.Color("cyan", "bold")
	}
	return t
}

// TraceID returns the correlation ID for this task.
func (t *Task) TraceID() string {
	return t.traceID
}

// Begin starts the report. Call it once.
func (t *Task) Begin(message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return errors.Statef("report", "task is closed")
	}
	if t.begun {
		return errors.Statef("report", "task already begun")
	}
	t.begun = true
	t.start = t.clock()
	t.last = t.start

	if t.heartbeat > 0 {
		t.wg.Add(1)
		go t.runHeartbeat()
	}

	if t.plain {
		_, err := fmt.Fprintf(t.w, "[BEGIN] %s (trace=%s)\n", message, shortTrace(t.traceID))
		return wrapWrite(err)
	}
	t.spin.Suffix = " " + message
	t.spin.Start()
	return nil
}

// Update advances the report. Updates inside the throttle window are
// dropped unless they land the final step.
func (t *Task) Update(step, total int, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.mustBeRunning(); err != nil {
		return err
	}
	now := t.clock()
	if now.Sub(t.last) < t.throttle && step < total {
		return nil
	}
	t.last = now
	t.step = step
	t.total = total

	pct := 0
	if total > 0 {
		pct = int(float64(step) / float64(total) * 100)
	}
	if t.plain {
		line := fmt.Sprintf("[%d/%d] [%d%%] %s", step, total, pct, message)
		if eta := t.etaLocked(step, total, now); eta > 0 {
			line += fmt.Sprintf(" (eta %s)", eta.Round(time.Second))
		}
		_, err := fmt.Fprintln(t.w, line)
		return wrapWrite(err)
	}

	face := ""
	if len(t.faces) > 0 {
		face = " " + t.faces[frames.StepIndex(step, len(t.faces))]
	}
	t.spin.Suffix = fmt.Sprintf(" %s %s%s", t.track(pct), message, face)
	return nil
}

// Complete stops the report with a success line.
func (t *Task) Complete(message string) error {
	w, duration, plain, err := t.finish()
	if err != nil || w == nil {
		return err
	}
	if plain {
		_, werr := fmt.Fprintf(w, "[COMPLETE] %s (completed in %s)\n", message, duration)
		return wrapWrite(werr)
	}
	_, werr := fmt.Fprintf(w, "✅ %s (completed in %s)\n", message, duration)
	return wrapWrite(werr)
}

// Fail stops the report with a failure line. The task's own error is
// echoed, not returned.
func (t *Task) Fail(message string, taskErr error) error {
	w, duration, plain, err := t.finish()
	if err != nil || w == nil {
		return err
	}
	if plain {
		_, werr := fmt.Fprintf(w, "[FAILED] %s: %v (after %s)\n", message, taskErr, duration)
		return wrapWrite(werr)
	}
	_, werr := fmt.Fprintf(w, "❌ %s: %v (after %s)\n", message, taskErr, duration)
	return wrapWrite(werr)
}

// Close releases the spinner and heartbeat without printing a summary.
// Complete and Fail already close; calling Close after them is a no-op.
func (t *Task) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	if t.spin != nil {
		t.spin.Stop()
	}
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
	return nil
}

// finish transitions to closed and hands back what the summary line needs.
// A nil writer with a nil error means the task was already closed.
func (t *Task) finish() (io.Writer, time.Duration, bool, error) {
	t.mu.Lock()
	if !t.begun {
		t.mu.Unlock()
		return nil, 0, false, errors.Statef("report", "task has not begun")
	}
	if t.closed {
		t.mu.Unlock()
		return nil, 0, false, nil
	}
	t.closed = true
	if t.spin != nil {
		t.spin.Stop()
	}
	duration := t.clock().Sub(t.start).Round(time.Second)
	w, plain := t.w, t.plain
	t.mu.Unlock()

	t.cancel()
	t.wg.Wait()
	return w, duration, plain, nil
}

func (t *Task) mustBeRunning() error {
	if !t.begun {
		return errors.Statef("report", "task has not begun")
	}
	if t.closed {
		return errors.Statef("report", "task is closed")
	}
	return nil
}

// track renders the inline paw bar shown in the spinner suffix.
func (t *Task) track(pct int) string {
	filled := pct * t.trackWidth / 100
	if filled > t.trackWidth {
		filled = t.trackWidth
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("🐾", filled) + strings.Repeat("░", t.trackWidth-filled) + "]"
}

// etaLocked projects the remaining time from the pace so far.
func (t *Task) etaLocked(step, total int, now time.Time) time.Duration {
	if step <= 0 || step >= total {
		return 0
	}
	elapsed := now.Sub(t.start)
	return time.Duration(float64(elapsed) / float64(step) * float64(total-step))
}

func (t *Task) runHeartbeat() {
	defer t.wg.Done()
	ticker := time.NewTicker(t.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.emitHeartbeat()
		case <-t.ctx.Done():
			return
		}
	}
}

// emitHeartbeat writes a keepalive line in plain mode. The spinner already
// animates on its own, so interactive mode stays quiet.
func (t *Task) emitHeartbeat() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || !t.plain {
		return
	}
	elapsed := t.clock().Sub(t.start).Round(time.Second)
	_, _ = fmt.Fprintf(t.w, "[WORKING] still running after %s (trace=%s)\n",
		elapsed, shortTrace(t.traceID))
}

func shortTrace(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, "report", "write failed")
}
