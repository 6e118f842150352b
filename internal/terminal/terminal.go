// Package terminal previews the rain animation in a terminal, one glyph per
// character cell.
package terminal

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"rainfolio.dev/internal/animator"
	"rainfolio.dev/internal/events"
	"rainfolio.dev/internal/typewriter"
)

// Glyphs are single-width in every terminal, unlike full-width katakana
const Glyphs = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"

var (
	rgbBackground = tcell.NewRGBColor(0, 0, 0)
	rgbHead       = tcell.NewRGBColor(200, 255, 200)
	rgbText       = tcell.NewRGBColor(230, 255, 230)
)

// Options configures the preview
type Options struct {
	Rain animator.Options
	// Greeting is typed out in the middle of the screen; empty shows none
	Greeting     string
	TypeInterval time.Duration
	// FrameInterval is how often a frame is offered to the animator
	FrameInterval time.Duration
}

// Run animates on screen until ctx is cancelled or the user presses q, Esc
// or Ctrl-C. It initializes the screen and finalizes it on return.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(rgbBackground))
	screen.HideCursor()
	screen.Clear()

	// one terminal cell is one "pixel" cell
	opts.Rain.CellSize = 1
	if len(opts.Rain.Glyphs) == 0 {
		opts.Rain.Glyphs = []rune(Glyphs)
	}
	if opts.Rain.Seed == 0 {
		opts.Rain.Seed = uint64(time.Now().UnixNano())
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}

	width, height := screen.Size()
	grid := animator.NewGrid(1, width, height)
	rain, err := animator.New(grid, opts.Rain)
	if err != nil {
		return err
	}

	resize := events.NewSignal[events.Resize]()
	defer resize.Close()
	rain.Bind(resize)
	defer rain.Stop()
	resize.Emit(events.Resize{Width: width, Height: height})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var greeting atomic.Value
	greeting.Store("")
	if opts.Greeting != "" {
		tw := typewriter.New(opts.TypeInterval)
		tw.Start(opts.Greeting)
		go tw.Run(ctx, func(text string, _ bool) {
			greeting.Store(text)
		})
	}

	// PollEvent returns nil once the screen is finalized
	evCh := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case evCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-evCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				resize.Emit(events.Resize{Width: w, Height: h})
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			}

		case now := <-ticker.C:
			if rain.Frame(now) {
				draw(screen, grid, greeting.Load().(string))
				screen.Show()
			}
		}
	}
}

// draw paints the grid, brightest cells palest, and the greeting over it
func draw(screen tcell.Screen, grid *animator.Grid, greeting string) {
	base := tcell.StyleDefault.Background(rgbBackground)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := grid.Get(x, y)
			if c.Brightness == 0 {
				screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			screen.SetContent(x, y, c.Glyph, nil, base.Foreground(shade(c.Brightness)))
		}
	}

	if greeting == "" {
		return
	}
	runes := []rune(greeting)
	x0 := max((grid.Width-len(runes))/2, 0)
	y0 := grid.Height / 2
	style := base.Foreground(rgbText).Bold(true)
	for i, r := range runes {
		if x0+i >= grid.Width {
			break
		}
		screen.SetContent(x0+i, y0, r, nil, style)
	}
}

// shade maps brightness to green, with a pale head on freshly drawn cells
func shade(brightness float64) tcell.Color {
	if brightness >= 1 {
		return rgbHead
	}
	g := int32(40 + brightness*215)
	return tcell.NewRGBColor(0, g, 0)
}
