// Package animator renders the "digital rain" background: columns of
// glyphs that fall down a viewport-sized surface and leave fading trails.
package animator

import (
	"time"

	"rainfolio.dev/internal/apperr"
	"rainfolio.dev/internal/events"
)

// DefaultGlyphs is the glyph set used when Options.Glyphs is empty
const DefaultGlyphs = "アァカサタナハマヤャラワガザダバパイィキシチニヒミリヰギジヂビピウゥクスツヌフムユュルグズブヅプエェケセテネヘメレヱゲゼデベペオォコソトノホモヨョロヲゴゾドボポヴッン0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Surface is the drawing target of the animator
type Surface interface {
	// Fade dims everything drawn so far by alpha (0..1)
	Fade(alpha float64)
	// DrawGlyph draws glyph with its top-left corner at pixel (x, y)
	DrawGlyph(x, y int, glyph rune)
}

// Resizer is implemented by surfaces that follow the viewport size
type Resizer interface {
	Resize(width, height int)
}

// Options tunes the effect. None of the values are invariants; they only
// need to look like rain.
type Options struct {
	CellSize    int     // glyph cell edge in pixels
	FPS         int     // redraw rate, independent of the frame request rate
	FadeAlpha   float64 // opacity of the per-frame black overlay
	ResetChance float64 // probability a column past the bottom restarts, per frame
	Baseline    int     // descent position assigned on (re)allocation
	Glyphs      []rune
	Seed        uint64
}

// DefaultOptions returns the stock look: 16px cells at 30 fps
func DefaultOptions() Options {
	return Options{
		CellSize:    16,
		FPS:         30,
		FadeAlpha:   0.05,
		ResetChance: 0.025,
		Baseline:    1,
		Glyphs:      []rune(DefaultGlyphs),
	}
}

// Rain is the animator state: one descent position per column.
// It is driven from a single goroutine and is not safe for concurrent use.
type Rain struct {
	surface  Surface
	opts     Options
	rng      *RNG
	interval time.Duration

	width, height int
	drops         []int
	lastFrame     time.Time

	unbind  func()
	stopped bool
}

// New creates an animator drawing onto surface. A nil surface is a
// programming error and is reported immediately.
func New(surface Surface, opts Options) (*Rain, error) {
	if surface == nil {
		return nil, apperr.ErrNoSurface
	}

	defaults := DefaultOptions()
	if opts.CellSize <= 0 {
		opts.CellSize = defaults.CellSize
	}
	if opts.FPS <= 0 {
		opts.FPS = defaults.FPS
	}
	if opts.FadeAlpha <= 0 || opts.FadeAlpha > 1 {
		opts.FadeAlpha = defaults.FadeAlpha
	}
	if opts.ResetChance <= 0 || opts.ResetChance > 1 {
		opts.ResetChance = defaults.ResetChance
	}
	if opts.Baseline <= 0 {
		opts.Baseline = defaults.Baseline
	}
	if len(opts.Glyphs) == 0 {
		opts.Glyphs = defaults.Glyphs
	}

	return &Rain{
		surface:  surface,
		opts:     opts,
		rng:      NewRNG(opts.Seed),
		interval: time.Second / time.Duration(opts.FPS),
	}, nil
}

// Options returns the effective options after defaulting
func (r *Rain) Options() Options {
	return r.opts
}

// Interval returns the minimum time between two drawn frames
func (r *Rain) Interval() time.Duration {
	return r.interval
}

// MaxColumns caps the column count whatever the reported width
const MaxColumns = 4096

// Resize recomputes the column grid for a new viewport size and puts every
// column back at the baseline
func (r *Rain) Resize(width, height int) {
	if r.stopped {
		return
	}

	r.width = max(width, 0)
	r.height = max(height, 0)

	if rs, ok := r.surface.(Resizer); ok {
		rs.Resize(r.width, r.height)
	}

	r.drops = make([]int, min(r.width/r.opts.CellSize, MaxColumns))
	for i := range r.drops {
		r.drops[i] = r.opts.Baseline
	}
}

// Bind subscribes the animator to viewport resize notifications.
// Stop releases the subscription.
func (r *Rain) Bind(resize *events.Signal[events.Resize]) {
	if r.stopped || resize == nil {
		return
	}
	if r.unbind != nil {
		r.unbind()
	}
	r.unbind = resize.Subscribe(func(ev events.Resize) {
		r.Resize(ev.Width, ev.Height)
	})
}

// Frame is called on every frame request. It draws only when a full
// interval has passed since the last drawn frame and reports whether it did.
func (r *Rain) Frame(now time.Time) bool {
	if r.stopped {
		return false
	}

	if !r.lastFrame.IsZero() {
		elapsed := now.Sub(r.lastFrame)
		if elapsed < r.interval {
			return false
		}
		// keep the cadence aligned to the interval rather than to the
		// frame request that happened to cross it
		r.lastFrame = now.Add(-(elapsed % r.interval))
	} else {
		r.lastFrame = now
	}

	r.Step()
	return true
}

// Step draws one frame regardless of the throttle
func (r *Rain) Step() {
	if r.stopped {
		return
	}

	r.surface.Fade(r.opts.FadeAlpha)

	cell := r.opts.CellSize
	for i, drop := range r.drops {
		r.surface.DrawGlyph(i*cell, drop*cell, r.rng.Glyph(r.opts.Glyphs))

		// restarting only some of the columns that ran off the bottom is
		// what staggers them
		if drop*cell > r.height && r.rng.Chance(r.opts.ResetChance) {
			drop = 0
		}
		r.drops[i] = drop + 1
	}
}

// Columns returns the current number of columns
func (r *Rain) Columns() int {
	return len(r.drops)
}

// Drops returns a copy of the per-column descent positions
func (r *Rain) Drops() []int {
	out := make([]int, len(r.drops))
	copy(out, r.drops)
	return out
}

// Stop releases the resize subscription. Later Frame, Step and Resize calls
// do nothing.
func (r *Rain) Stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	if r.unbind != nil {
		r.unbind()
		r.unbind = nil
	}
}

// Stopped reports whether Stop was called
func (r *Rain) Stopped() bool {
	return r.stopped
}
