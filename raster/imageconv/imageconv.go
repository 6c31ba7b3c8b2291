// Package imageconv bridges standard library images and raster grids.
// Samples are normalized to [0, 1] by dividing 8-bit channels by 255; alpha
// is ignored.
package imageconv

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/palette"
)

// FromImage converts img into a grid anchored at the origin. Colors are read
// un-premultiplied, so translucent pixels keep their straight RGB value.
func FromImage(img image.Image) *buffer.Grid {
	if img == nil {
		return buffer.New(0, 0)
	}

	b := img.Bounds()
	g := buffer.New(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			row := g.Row(y)
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := range row {
				p := src.Pix[off+4*x : off+4*x+3 : off+4*x+3]
				row[x] = core.Color{R: core.FromByte(p[0]), G: core.FromByte(p[1]), B: core.FromByte(p[2])}
			}
		}
		return g
	}

	for y := range b.Dy() {
		row := g.Row(y)
		for x := range row {
			n := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = core.Color{R: core.FromByte(n.R), G: core.FromByte(n.G), B: core.FromByte(n.B)}
		}
	}
	return g
}

// ToRGBA renders g as an opaque RGBA image, clamping channels to [0, 1].
func ToRGBA(g *buffer.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := range g.Height() {
		off := img.PixOffset(0, y)
		for x, c := range g.Row(y) {
			p := img.Pix[off+4*x : off+4*x+4 : off+4*x+4]
			p[0] = core.ToByte(c.R)
			p[1] = core.ToByte(c.G)
			p[2] = core.ToByte(c.B)
			p[3] = 0xff
		}
	}
	return img
}

// MaxPalettedColors is the largest palette an *image.Paletted can index.
const MaxPalettedColors = 256

// ErrTooManyColors is returned by ToPaletted for palettes that do not fit
// 8-bit indices.
var ErrTooManyColors = errors.New("imageconv: palette exceeds 256 colors")

// ToPaletted renders palette indices as an *image.Paletted. index must hold
// width*height entries, each a valid index into p.
func ToPaletted(width, height int, index []int, p palette.Palette) (*image.Paletted, error) {
	if p.Len() > MaxPalettedColors {
		return nil, fmt.Errorf("%w: %d", ErrTooManyColors, p.Len())
	}
	if len(index) != width*height {
		return nil, fmt.Errorf("imageconv: %d indices for %dx%d", len(index), width, height)
	}

	img := image.NewPaletted(image.Rect(0, 0, width, height), p.ColorPalette())
	for i, idx := range index {
		if idx < 0 || idx >= p.Len() {
			return nil, fmt.Errorf("imageconv: index %d out of range at %d", idx, i)
		}
		img.Pix[i] = uint8(idx)
	}
	return img, nil
}
