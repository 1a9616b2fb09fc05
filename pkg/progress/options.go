package progress

import (
	"io"
	"os"
	"time"

	"github.com/purrgress/purrgress/pkg/display"
	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/frames"
	"github.com/purrgress/purrgress/pkg/render"
)

// UnknownTotal marks a bar whose end is not known up front. Such bars run
// step driven: frames cycle by count and the metrics drop the percentage.
const UnknownTotal int64 = -1

type config struct {
	writer      io.Writer
	handle      render.DisplayHandle
	surface     display.Surface
	theme       frames.Theme
	themeName   string
	description string
	unit        string
	unitScale   bool
	unitDivisor float64
	width       int
	widthFunc   func() int
	refresh     time.Duration
	moving      bool
	centered    bool
	sleepPer    time.Duration
	clock       func() time.Time
}

func defaultConfig() config {
	return config{
		writer:      os.Stdout,
		surface:     display.SurfaceAuto,
		theme:       frames.DefaultTheme(),
		description: "Progress",
		unit:        "it",
		unitDivisor: 1000,
		refresh:     100 * time.Millisecond,
		centered:    true,
		clock:       time.Now,
	}
}

func (c *config) validate(total int64) error {
	if total < 0 && total != UnknownTotal {
		return errors.Configf("progress", "total must be >= 0 or UnknownTotal, got %d", total)
	}
	if c.width < 0 {
		return errors.Configf("progress", "width must be >= 0, got %d", c.width)
	}
	if c.refresh < 0 {
		return errors.Configf("progress", "refresh rate must be >= 0, got %s", c.refresh)
	}
	if c.sleepPer < 0 {
		return errors.Configf("progress", "per-item sleep must be >= 0, got %s", c.sleepPer)
	}
	if c.unitScale && c.unitDivisor <= 0 {
		return errors.Configf("progress", "unit divisor must be > 0, got %v", c.unitDivisor)
	}
	if c.themeName == "" {
		if err := c.theme.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Option configures a bar at construction time.
type Option func(*config)

// WithWriter directs all output to w instead of stdout.
func WithWriter(w io.Writer) Option {
	return func(c *config) { c.writer = w }
}

// WithHandle supplies the rich-display channel of an embedding notebook
// frontend. Setting one also steers automatic surface detection toward the
// notebook backend.
func WithHandle(h render.DisplayHandle) Option {
	return func(c *config) { c.handle = h }
}

// WithSurface pins the output surface instead of detecting it.
func WithSurface(s display.Surface) Option {
	return func(c *config) { c.surface = s }
}

// WithTheme uses the given theme for frames and glyphs.
func WithTheme(t frames.Theme) Option {
	return func(c *config) { c.theme = t }
}

// WithThemeName looks the theme up in the registry when the bar is built.
func WithThemeName(name string) Option {
	return func(c *config) { c.themeName = name }
}

// WithDescription sets the label painted before the bar.
func WithDescription(desc string) Option {
	return func(c *config) { c.description = desc }
}

// WithUnit sets the unit suffix used in the rate section.
func WithUnit(unit string) Option {
	return func(c *config) { c.unit = unit }
}

// WithUnitScale turns on unit scaling with the given ladder divisor,
// typically 1000 or 1024.
func WithUnitScale(divisor float64) Option {
	return func(c *config) {
		c.unitScale = true
		c.unitDivisor = divisor
	}
}

// WithWidth fixes the glyph track width. Zero keeps the default, which is
// derived from the measured terminal width.
func WithWidth(width int) Option {
	return func(c *config) { c.width = width }
}

// WithWidthFunc overrides how the terminal width is measured.
func WithWidthFunc(f func() int) Option {
	return func(c *config) { c.widthFunc = f }
}

// WithRefreshRate bounds how often intermediate paints reach the backend.
// The final paint always goes through. Zero disables throttling.
func WithRefreshRate(d time.Duration) Option {
	return func(c *config) { c.refresh = d }
}

// WithMovingCat walks the cat across the terminal as progress advances
// instead of keeping it centered.
func WithMovingCat() Option {
	return func(c *config) { c.moving = true }
}

// WithCentered controls horizontal centering of the cat block on ANSI
// surfaces. Ignored when the cat is moving.
func WithCentered(centered bool) Option {
	return func(c *config) { c.centered = centered }
}

// WithSleepPer pauses after each consumed item. Demo pacing only.
func WithSleepPer(d time.Duration) Option {
	return func(c *config) { c.sleepPer = d }
}

// WithClock substitutes the time source used for elapsed, rate and
// throttling decisions.
func WithClock(clock func() time.Time) Option {
	return func(c *config) { c.clock = clock }
}
