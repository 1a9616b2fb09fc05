// Package progress implements the cat progress bar: a three-line cat whose
// eyes follow the completion fraction, sitting above a paw-print track with
// tqdm-style counters. Bars run over notebooks, ANSI terminals and plain
// streams through the render backends and never let an output failure reach
// the caller.
package progress

import (
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/purrgress/purrgress/pkg/display"
	"github.com/purrgress/purrgress/pkg/errors"
	"github.com/purrgress/purrgress/pkg/frames"
	"github.com/purrgress/purrgress/pkg/render"
)

type barState int

const (
	stateUnopened barState = iota
	stateActive
	stateClosed
)

var (
	defaultDescStyle    = color.New(color.FgCyan)
	headStyle           = color.New(color.FgHiYellow)
	fillStyle           = color.New(color.FgGreen)
	emptyStyle          = color.New(color.Faint)
	defaultPostfixStyle = color.New(color.FgHiBlack)
)

// Bar is a single progress session. It is created unopened, paints while
// active and goes quiet once closed; mutating it outside the active window
// returns a state error. All methods are safe for concurrent use.
type Bar struct {
	mu sync.Mutex

	cfg     config
	theme   frames.Theme
	spec    frames.FrameSpec
	backend render.Backend
	surface display.Surface

	state   barState
	total   int64
	current int64

	desc         string
	descStyle    *color.Color
	postfix      []Field
	postfixStyle *color.Color

	width    int
	catWidth int
	maxMove  int

	start     time.Time
	lastPaint time.Time
}

// New builds an unopened bar. The configuration is checked here; a bar that
// survives New will not fail for configuration reasons later.
func New(total int64, opts ...Option) (*Bar, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.themeName != "" {
		t, ok := frames.GetTheme(cfg.themeName)
		if !ok {
			return nil, errors.Configf("progress", "unknown theme %q", cfg.themeName)
		}
		cfg.theme = t
	}
	if err := cfg.validate(total); err != nil {
		return nil, err
	}
	return &Bar{
		cfg:          cfg,
		theme:        cfg.theme,
		spec:         cfg.theme.Spec(),
		total:        total,
		desc:         cfg.description,
		descStyle:    defaultDescStyle,
		postfixStyle: defaultPostfixStyle,
	}, nil
}

// Open resolves the output surface, reserves the block and paints the
// initial state. A bar opens exactly once.
func (b *Bar) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case stateActive:
		return errors.Statef("progress", "bar is already open")
	case stateClosed:
		return errors.Statef("progress", "bar is closed")
	}

	b.surface = b.resolveSurface()
	b.backend = render.ForSurface(b.surface, b.cfg.writer, b.cfg.handle)
	b.width = b.resolveTrackWidth()
	if b.theme.BigCat {
		b.resolveCatLayout()
	}
	b.state = stateActive
	b.start = b.cfg.clock()
	_ = b.backend.Init(b.blockHeight())
	b.paintLocked(true)
	return nil
}

// Add advances the bar by n consumed items and repaints, subject to the
// refresh throttle. The count never passes a known total.
func (b *Bar) Add(n int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.mustBeActive("add"); err != nil {
		return err
	}
	if n < 0 {
		return errors.Configf("progress", "add amount must be >= 0, got %d", n)
	}
	b.advanceLocked(n)
	b.paintLocked(false)
	return nil
}

// SetDescription relabels the bar and repaints once.
func (b *Bar) SetDescription(desc string) error {
	return b.SetDescriptionStyled(desc, nil)
}

// SetDescriptionStyled relabels the bar with an explicit style. A nil style
// keeps the current one.
func (b *Bar) SetDescriptionStyled(desc string, style *color.Color) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.mustBeActive("set description"); err != nil {
		return err
	}
	b.desc = desc
	if style != nil {
		b.descStyle = style
	}
	b.paintLocked(true)
	return nil
}

// SetPostfix replaces the postfix pairs, keeping their order, and repaints
// once.
func (b *Bar) SetPostfix(fields ...Field) error {
	return b.SetPostfixStyled(nil, fields...)
}

// SetPostfixStyled replaces the postfix pairs with an explicit style. A nil
// style keeps the current one.
func (b *Bar) SetPostfixStyled(style *color.Color, fields ...Field) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.mustBeActive("set postfix"); err != nil {
		return err
	}
	b.postfix = append([]Field(nil), fields...)
	if style != nil {
		b.postfixStyle = style
	}
	b.paintLocked(true)
	return nil
}

// Close paints the final state and releases the cursor. Closing again is a
// no-op, and a bar that never opened closes without output.
func (b *Bar) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case stateClosed:
		return nil
	case stateUnopened:
		b.state = stateClosed
		return nil
	}
	b.state = stateClosed
	b.paintLocked(true)
	_ = b.backend.Close()
	return nil
}

// Current returns the number of items consumed so far.
func (b *Bar) Current() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Total returns the target set at construction, or UnknownTotal.
func (b *Bar) Total() int64 {
	return b.total
}

func (b *Bar) mustBeActive(op string) error {
	switch b.state {
	case stateUnopened:
		return errors.Statef("progress", "cannot %s before the bar is open", op)
	case stateClosed:
		return errors.Statef("progress", "cannot %s after the bar is closed", op)
	}
	return nil
}

func (b *Bar) advanceLocked(n int64) {
	b.current += n
	if b.total >= 0 && b.current > b.total {
		b.current = b.total
	}
}

func (b *Bar) resolveSurface() display.Surface {
	if b.cfg.surface != display.SurfaceAuto {
		return b.cfg.surface
	}
	if b.cfg.handle != nil {
		return display.SurfaceNotebook
	}
	return display.Detect(b.cfg.writer)
}

func (b *Bar) measureWidth() int {
	if b.cfg.widthFunc != nil {
		return b.cfg.widthFunc()
	}
	return display.Width(b.cfg.writer)
}

func (b *Bar) resolveTrackWidth() int {
	if b.cfg.width > 0 {
		return b.cfg.width
	}
	w := b.measureWidth() - 20
	if w > 50 {
		w = 50
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (b *Bar) resolveCatLayout() {
	term := b.measureWidth()
	if b.cfg.moving {
		b.maxMove = term - frames.CatArtWidth - 1
		if b.maxMove < 0 {
			b.maxMove = 0
		}
		return
	}
	if b.cfg.centered && b.surface == display.SurfaceANSI {
		b.catWidth = term
	}
}

func (b *Bar) blockHeight() int {
	if b.theme.BigCat {
		return 4
	}
	return 1
}

// selectFraction is the completion fraction used for frame selection. A
// zero total counts as complete; an unknown one as not started.
func (b *Bar) selectFraction() float64 {
	switch {
	case b.total > 0:
		return float64(b.current) / float64(b.total)
	case b.total == 0:
		return 1.0
	default:
		return 0.0
	}
}

// fillFraction drives the glyph track. Unlike frame selection it leaves a
// zero total empty, matching the 0/0 metrics line.
func (b *Bar) fillFraction() float64 {
	if b.total > 0 {
		return float64(b.current) / float64(b.total)
	}
	return 0.0
}

// paintLocked renders the block. Unforced paints are throttled by the
// refresh rate, except when the bar just reached a known total.
func (b *Bar) paintLocked(force bool) {
	now := b.cfg.clock()
	atEnd := b.total > 0 && b.current >= b.total
	if !force && !atEnd && now.Sub(b.lastPaint) < b.cfg.refresh {
		return
	}
	b.lastPaint = now
	_ = b.backend.Paint(b.renderLines(now))
}

func (b *Bar) renderLines(now time.Time) []string {
	frame, modifier := b.spec.Select(b.selectFraction(), int(b.current), b.total >= 0)

	if !b.theme.BigCat {
		return []string{b.flatLine(frame, now)}
	}

	if modifier == "" {
		modifier = frames.Tails[0]
	}
	indent := 0
	if b.cfg.moving && b.maxMove > 0 {
		indent = int(b.selectFraction() * float64(b.maxMove))
	}
	lines := strings.Split(frames.CatBlock(frame, modifier, b.catWidth, indent), "\n")
	return append(lines, b.barLine(now))
}

// barLine is the bottom row of a big-cat block: label, glyph track,
// counters and postfix.
func (b *Bar) barLine(now time.Time) string {
	var sb strings.Builder
	sb.WriteString(b.styled(b.descStyle, b.desc+": "))
	sb.WriteString(b.track())
	sb.WriteString(" ")
	sb.WriteString(b.metrics(now))
	if len(b.postfix) > 0 {
		sb.WriteString(b.styled(b.postfixStyle, " | "+joinFields(b.postfix)))
	}
	return sb.String()
}

// flatLine is the single row painted for themes without the big cat; the
// selected frame rides inline between the label and the track.
func (b *Bar) flatLine(frame string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(b.styled(b.descStyle, b.desc+": "))
	if frame != "" {
		sb.WriteString(frame)
		sb.WriteString(" ")
	}
	sb.WriteString(b.track())
	sb.WriteString(" ")
	sb.WriteString(b.metrics(now))
	if len(b.postfix) > 0 {
		sb.WriteString(b.styled(b.postfixStyle, " | "+joinFields(b.postfix)))
	}
	return sb.String()
}

// track renders the paw glyphs. The head glyph rides the leading edge until
// the bar completes.
func (b *Bar) track() string {
	fraction := b.fillFraction()
	filled := int(fraction * float64(b.width))
	var sb strings.Builder
	for i := 0; i < b.width; i++ {
		switch {
		case i < filled && i == filled-1 && fraction < 1:
			sb.WriteString(b.styled(headStyle, b.theme.Head))
		case i < filled:
			sb.WriteString(b.styled(fillStyle, b.theme.Fill))
		default:
			sb.WriteString(b.styled(emptyStyle, b.theme.Empty))
		}
	}
	return sb.String()
}

func (b *Bar) metrics(now time.Time) string {
	elapsed := time.Duration(0)
	if !b.start.IsZero() {
		elapsed = now.Sub(b.start)
	}
	return metricsLine(b.current, b.total, elapsed, b.cfg.unitScale, b.cfg.unitDivisor, b.cfg.unit)
}

// styled applies c only on ANSI surfaces; notebook fallbacks and static
// logs stay plain.
func (b *Bar) styled(c *color.Color, s string) string {
	if c == nil || b.surface != display.SurfaceANSI {
		return s
	}
	return c.Sprint(s)
}
