package buffer

import "github.com/cwbudde/algo-dither/raster/core"

// Grid is a width x height raster of colors stored row-major.
type Grid struct {
	width  int
	height int
	pix    []core.Color
}

// New returns a zero-filled grid. Negative dimensions are treated as zero.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{width: width, height: height, pix: make([]core.Color, width*height)}
}

// Uniform returns a grid with every pixel set to c.
func Uniform(width, height int, c core.Color) *Grid {
	g := New(width, height)
	for i := range g.pix {
		g.pix[i] = c
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the pixel count.
func (g *Grid) Len() int { return len(g.pix) }

// Empty reports whether the grid has zero area.
func (g *Grid) Empty() bool { return g == nil || g.width == 0 || g.height == 0 }

// In reports whether (x, y) lies inside the grid. Both axes are checked
// independently.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the color at (x, y). Out-of-range coordinates yield the zero
// color.
func (g *Grid) At(x, y int) core.Color {
	if !g.In(x, y) {
		return core.Color{}
	}
	return g.pix[y*g.width+x]
}

// Set stores c at (x, y) and reports whether the coordinate was in range.
func (g *Grid) Set(x, y int, c core.Color) bool {
	if !g.In(x, y) {
		return false
	}
	g.pix[y*g.width+x] = c
	return true
}

// AddAt accumulates delta into (x, y). Out-of-range targets are dropped and
// reported as false.
func (g *Grid) AddAt(x, y int, delta core.Color) bool {
	if !g.In(x, y) {
		return false
	}
	i := y*g.width + x
	g.pix[i] = g.pix[i].Add(delta)
	return true
}

// Row returns the pixels of row y as a slice sharing the grid's storage, or
// nil when y is out of range.
func (g *Grid) Row(y int) []core.Color {
	if y < 0 || y >= g.height {
		return nil
	}
	return g.pix[y*g.width : (y+1)*g.width]
}

// Pixels returns the underlying row-major storage.
func (g *Grid) Pixels() []core.Color {
	return g.pix
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	pix := make([]core.Color, len(g.pix))
	copy(pix, g.pix)
	return &Grid{width: g.width, height: g.height, pix: pix}
}

// Map returns a new grid with fn applied to every pixel.
func (g *Grid) Map(fn func(core.Color) core.Color) *Grid {
	out := New(g.width, g.height)
	for i, c := range g.pix {
		out.pix[i] = fn(c)
	}
	return out
}

// Channel extracts one channel as a row-major float64 plane. ch is 0 for
// red, 1 for green and 2 for blue; other values return nil.
func (g *Grid) Channel(ch int) []float64 {
	if ch < 0 || ch > 2 {
		return nil
	}
	out := make([]float64, len(g.pix))
	for i, c := range g.pix {
		switch ch {
		case 0:
			out[i] = c.R
		case 1:
			out[i] = c.G
		default:
			out[i] = c.B
		}
	}
	return out
}
