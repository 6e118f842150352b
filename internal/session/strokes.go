package session

import "rainfolio.dev/internal/animator"

// strokes is an animator.Surface that records one frame's drawing calls so
// they can be replayed on the page's canvas
type strokes struct {
	width, height int
	fade          float64
	glyphs        []Glyph
}

var _ animator.Surface = (*strokes)(nil)
var _ animator.Resizer = (*strokes)(nil)

func (s *strokes) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *strokes) Fade(alpha float64) {
	s.fade = alpha
}

func (s *strokes) DrawGlyph(x, y int, glyph rune) {
	// below the canvas; it would clip these anyway
	if y >= s.height {
		return
	}
	s.glyphs = append(s.glyphs, Glyph{X: x, Y: y, G: string(glyph)})
}

// take returns the recorded frame and starts a new one
func (s *strokes) take() Frame {
	f := Frame{Fade: s.fade, Glyphs: s.glyphs}
	s.fade = 0
	s.glyphs = nil
	return f
}
