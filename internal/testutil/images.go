// Package testutil holds deterministic test rasters and tolerance
// assertions shared by package tests.
package testutil

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/core"
)

// GradientGrid returns a raster whose red channel ramps left to right, green
// ramps top to bottom and blue is their mean.
func GradientGrid(width, height int) *buffer.Grid {
	g := buffer.New(width, height)
	for y := range height {
		for x := range width {
			r := ramp(x, width)
			gr := ramp(y, height)
			g.Set(x, y, core.Color{R: r, G: gr, B: (r + gr) / 2})
		}
	}
	return g
}

// CheckerGrid returns a raster alternating between a and b, starting with a
// at the origin.
func CheckerGrid(width, height int, a, b core.Color) *buffer.Grid {
	g := buffer.New(width, height)
	for y := range height {
		for x := range width {
			if (x+y)%2 == 0 {
				g.Set(x, y, a)
			} else {
				g.Set(x, y, b)
			}
		}
	}
	return g
}

// NoiseGrid returns uniform gray noise in [0, 1] from a fixed seed.
func NoiseGrid(seed int64, width, height int) *buffer.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := buffer.New(width, height)
	for i := range g.Pixels() {
		g.Pixels()[i] = core.Gray(rng.Float64())
	}
	return g
}

// GradientImage is GradientGrid rendered as an 8-bit image.
func GradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			r := core.ToByte(ramp(x, width))
			g := core.ToByte(ramp(y, height))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: uint8((uint16(r) + uint16(g)) / 2), A: 0xff})
		}
	}
	return img
}

func ramp(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
