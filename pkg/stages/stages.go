// Package stages renders a weighted multi-stage pipeline behind a single
// live block: an animated phase cat whose sprite and color follow overall
// completion, plus per-stage and overall tracks. Weights let a slow stage
// occupy its honest share of the overall bar.
package stages

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uilive"

	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/frames"
)

// Stage is one named phase of the pipeline with its relative weight.
type Stage struct {
	Name   string
	Weight int
}

// Option configures a Runner.
type Option func(*Runner)

// WithWriter directs output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithRefresh bounds how often intermediate repaints flush. Stage
// transitions and the finish always flush. Zero disables throttling.
func WithRefresh(d time.Duration) Option {
	return func(r *Runner) { r.refresh = d }
}

// WithTrackWidth sets the width of both bars.
func WithTrackWidth(width int) Option {
	return func(r *Runner) { r.width = width }
}

// WithClock substitutes the time source used for throttling.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) { r.clock = clock }
}

// Runner drives the live block for one pipeline run.
type Runner struct {
	mu sync.Mutex

	stages  []Stage
	out     io.Writer
	lw      *uilive.Writer
	refresh time.Duration
	width   int
	clock   func() time.Time

	totalWeight int
	doneWeight  int
	idx         int
	stageFrac   float64
	frame       int
	lastFlush   time.Time
	started     bool
	closed      bool
}

// NewRunner validates the pipeline shape and returns an unstarted runner.
func NewRunner(stageList []Stage, opts ...Option) (*Runner, error) {
	if len(stageList) == 0 {
		return nil, errors.Configf("stages", "at least one stage is required")
	}
	total := 0
	for _, s := range stageList {
		if s.Name == "" {
			return nil, errors.Configf("stages", "every stage needs a name")
		}
		if s.Weight <= 0 {
			return nil, errors.Configf("stages", "stage %q has non-positive weight %d", s.Name, s.Weight)
		}
		total += s.Weight
	}
	r := &Runner{
		stages:      append([]Stage(nil), stageList...),
		out:         os.Stdout,
		refresh:     100 * time.Millisecond,
		width:       20,
		clock:       time.Now,
		totalWeight: total,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.width <= 0 {
		return nil, errors.Configf("stages", "track width must be > 0, got %d", r.width)
	}
	if r.refresh < 0 {
		return nil, errors.Configf("stages", "refresh rate must be >= 0, got %s", r.refresh)
	}
	return r, nil
}

// Start paints the initial block. A runner starts exactly once.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return errors.Statef("stages", "runner is closed")
	}
	if r.started {
		return errors.Statef("stages", "runner already started")
	}
	r.started = true
	r.lw = uilive.New()
	r.lw.Out = r.out
	r.paintLocked(true)
	return nil
}

// Advance reports progress within the current stage as a fraction of that
// stage, clamped to [0,1].
func (r *Runner) Advance(stageFraction float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.mustBeRunning(); err != nil {
		return err
	}
	if r.idx >= len(r.stages) {
		return errors.Statef("stages", "all stages already finished")
	}
	if stageFraction < 0 {
		stageFraction = 0
	}
	if stageFraction > 1 {
		stageFraction = 1
	}
	r.stageFrac = stageFraction
	r.paintLocked(stageFraction >= 1)
	return nil
}

// NextStage completes the current stage and moves to the following one.
func (r *Runner) NextStage() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.mustBeRunning(); err != nil {
		return err
	}
	if r.idx >= len(r.stages) {
		return errors.Statef("stages", "all stages already finished")
	}
	r.doneWeight += r.stages[r.idx].Weight
	r.idx++
	r.stageFrac = 0
	r.paintLocked(true)
	return nil
}

// Finish paints the completed block and stops the live writer. Safe to
// call more than once.
func (r *Runner) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	if !r.started {
		r.closed = true
		return nil
	}
	r.closed = true
	r.doneWeight = r.totalWeight
	r.idx = len(r.stages)
	r.paintLocked(true)
	return nil
}

// CurrentStage names the stage in progress, or "complete" past the end.
func (r *Runner) CurrentStage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentNameLocked()
}

func (r *Runner) currentNameLocked() string {
	if r.idx >= len(r.stages) {
		return "complete"
	}
	return r.stages[r.idx].Name
}

// Overall returns the weighted completion fraction across all stages.
func (r *Runner) Overall() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overallLocked()
}

func (r *Runner) overallLocked() float64 {
	done := float64(r.doneWeight)
	if r.idx < len(r.stages) {
		done += r.stageFrac * float64(r.stages[r.idx].Weight)
	}
	return done / float64(r.totalWeight)
}

func (r *Runner) mustBeRunning() error {
	if !r.started {
		return errors.Statef("stages", "runner has not started")
	}
	if r.closed {
		return errors.Statef("stages", "runner is closed")
	}
	return nil
}

// paintLocked rebuilds the whole block and flushes it through the live
// writer. Unforced paints respect the refresh throttle.
func (r *Runner) paintLocked(force bool) {
	now := r.clock()
	if !force && now.Sub(r.lastFlush) < r.refresh {
		return
	}
	r.lastFlush = now

	overall := r.overallLocked()
	phase := frames.PhaseFor(overall)
	sprites := phase.Sprites()
	sprite := sprites[r.frame%len(sprites)]
	r.frame++
	style := phaseStyle(phase)

	var b strings.Builder
	for _, line := range sprite {
		b.WriteString(style.Sprint(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Current Stage: %s\n", r.currentNameLocked())
	fmt.Fprintf(&b, "Stage Progress: %s %.1f%%\n", track(r.stageFracForPaint(), r.width), r.stageFracForPaint()*100)
	fmt.Fprintf(&b, "Overall Progress: %s %.1f%%\n", track(overall, r.width), overall*100)

	fmt.Fprint(r.lw, b.String())
	_ = r.lw.Flush()
}

// stageFracForPaint pins the stage bar to full once the pipeline is done.
func (r *Runner) stageFracForPaint() float64 {
	if r.idx >= len(r.stages) {
		return 1
	}
	return r.stageFrac
}

func track(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// phaseStyle maps a cat phase to its display color.
func phaseStyle(p frames.Phase) *color.Color {
	switch p {
	case frames.PhaseSleeping:
		return color.New(color.FgBlue, color.Faint)
	case frames.PhaseWaking:
		return color.New(color.FgYellow)
	case frames.PhaseAlert:
		return color.New(color.FgGreen)
	case frames.PhaseRunning:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgMagenta)
	}
}
