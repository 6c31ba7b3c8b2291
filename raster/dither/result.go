package dither

import (
	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/palette"
)

// Stats counts kernel taps over a run.
type Stats struct {
	Applied int // taps written into the working buffer
	Dropped int // taps that fell outside the raster
}

// Result is the output of a completed run.
type Result struct {
	// Source is the grid the run scanned, before color model conversion.
	// It is the caller's grid and is not modified.
	Source *buffer.Grid
	// Output holds the chosen palette color of every pixel.
	Output *buffer.Grid
	// Index holds the palette index of every pixel, row-major.
	Index []int
	// Palette is the palette the indices refer to.
	Palette palette.Palette
	Stats   Stats
}

// Width returns the output width.
func (r *Result) Width() int { return r.Output.Width() }

// Height returns the output height.
func (r *Result) Height() int { return r.Output.Height() }

// Histogram counts how many pixels use each palette entry.
func (r *Result) Histogram() []int {
	counts := make([]int, r.Palette.Len())
	for _, idx := range r.Index {
		counts[idx]++
	}
	return counts
}
