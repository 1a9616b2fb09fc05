// Package anim plays the short opt-in welcome animation: the cat wakes
// up, stretches and reports ready. The whole sequence is decorative and
// never returns an error to the caller.
package anim

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"

	"github.com/purrgress/purrgress/pkg/frames"
	"github.com/purrgress/purrgress/pkg/render"
)

// EnvAnimation disables the welcome animation when set to "false".
const EnvAnimation = "PURRGRESS_ANIMATION"

const (
	headerWaking     = "🐱 Waking up the cat..."
	headerStretching = "😴 Stretching..."
	headerReady      = "🎉 Cat is ready!"

	// blockRows is the tallest frame: one header plus four art lines.
	blockRows = 5

	sleepFrameDelay   = 400 * time.Millisecond
	stretchFrameDelay = 300 * time.Millisecond
	readyDelay        = 300 * time.Millisecond
)

type config struct {
	w     io.Writer
	sleep func(time.Duration)
}

// Option configures a Welcome run.
type Option func(*config)

// WithWriter directs the animation to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.w = w }
}

// WithSleep substitutes the pacing function between frames.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *config) { c.sleep = fn }
}

// welcomeShown latches after the first run so importers that call
// Welcome from several places play the animation once per process.
var welcomeShown atomic.Bool

// resetWelcome rearms the run-once latch.
func resetWelcome() { welcomeShown.Store(false) }

// Welcome plays the wake-up sequence. It returns without output when the
// kill switch is set or the animation already ran this process. Paint
// failures degrade silently.
func Welcome(opts ...Option) {
	if strings.EqualFold(os.Getenv(EnvAnimation), "false") {
		return
	}
	if !welcomeShown.CompareAndSwap(false, true) {
		return
	}

	cfg := &config{w: os.Stdout, sleep: time.Sleep}
	for _, opt := range opts {
		opt(cfg)
	}

	sleepArt := color.New(color.FgBlue, color.Faint)
	wakeHead := color.New(color.FgHiYellow, color.Bold)
	stretchHead := color.New(color.FgCyan)
	stretchArt := color.New(color.FgHiGreen)
	readyHead := color.New(color.FgHiGreen, color.Bold)
	readyArt := color.New(color.FgHiYellow)

	backend := render.NewANSI(cfg.w)
	if err := backend.Init(blockRows); err != nil {
		return
	}

	for _, art := range frames.SleepingCat {
		lines := []string{wakeHead.Sprint(headerWaking)}
		for _, l := range art {
			lines = append(lines, sleepArt.Sprint(l))
		}
		_ = backend.Paint(lines)
		cfg.sleep(sleepFrameDelay)
	}

	for _, eyes := range frames.StretchingEyes {
		lines := []string{
			wakeHead.Sprint(headerWaking),
			stretchHead.Sprint(headerStretching),
		}
		for _, l := range frames.CatLines(eyes, frames.Tails[0]) {
			lines = append(lines, stretchArt.Sprint(l))
		}
		_ = backend.Paint(lines)
		cfg.sleep(stretchFrameDelay)
	}

	lines := []string{readyHead.Sprint(headerReady)}
	for _, l := range frames.ReadyCat {
		lines = append(lines, readyArt.Sprint(l))
	}
	_ = backend.Paint(lines)
	cfg.sleep(readyDelay)

	_ = backend.Close()
}
