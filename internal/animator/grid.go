package animator

// brightnessFloor is where a fading cell is treated as cleared
const brightnessFloor = 0.04

// Cell is one glyph slot of a Grid
type Cell struct {
	Glyph      rune
	Brightness float64
}

// Grid is an in-memory Surface made of glyph cells. Drawing a glyph lights
// its cell fully; Fade dims every cell, which leaves the trail behind each
// falling column.
type Grid struct {
	CellSize      int
	Width, Height int // in cells
	Cells         [][]Cell
}

// NewGrid creates a grid covering a widthPx x heightPx surface
func NewGrid(cellSize, widthPx, heightPx int) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	g := &Grid{CellSize: cellSize}
	g.Resize(widthPx, heightPx)
	return g
}

// Resize reallocates the grid for a new surface size, clearing it
func (g *Grid) Resize(widthPx, heightPx int) {
	g.Width = max(widthPx/g.CellSize, 0)
	g.Height = max(heightPx/g.CellSize, 0)

	g.Cells = make([][]Cell, g.Height)
	for y := range g.Cells {
		g.Cells[y] = make([]Cell, g.Width)
	}
}

// InBounds checks if a cell position is within the grid
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.Width && row >= 0 && row < g.Height
}

// Get returns the cell at a position, or an empty cell when out of bounds
func (g *Grid) Get(col, row int) Cell {
	if g.InBounds(col, row) {
		return g.Cells[row][col]
	}
	return Cell{}
}

// Fade dims every cell by alpha, the equivalent of painting a translucent
// black rectangle over the whole surface
func (g *Grid) Fade(alpha float64) {
	keep := 1 - alpha
	for y := range g.Cells {
		for x := range g.Cells[y] {
			c := &g.Cells[y][x]
			if c.Brightness == 0 {
				continue
			}
			c.Brightness *= keep
			if c.Brightness < brightnessFloor {
				*c = Cell{}
			}
		}
	}
}

// DrawGlyph lights the cell containing pixel (x, y). Glyphs that land below
// or beside the grid are dropped, as they would be clipped on a canvas.
func (g *Grid) DrawGlyph(x, y int, glyph rune) {
	col, row := x/g.CellSize, y/g.CellSize
	if x < 0 || y < 0 || !g.InBounds(col, row) {
		return
	}
	g.Cells[row][col] = Cell{Glyph: glyph, Brightness: 1}
}

// Lit returns the number of cells currently showing a glyph
func (g *Grid) Lit() int {
	n := 0
	for y := range g.Cells {
		for x := range g.Cells[y] {
			if g.Cells[y][x].Brightness > 0 {
				n++
			}
		}
	}
	return n
}
