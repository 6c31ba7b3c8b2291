// Package palette defines the ordered set of output colors a dither pass may
// emit, the distance metrics used to compare colors against it, and a set of
// named palettes.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cwbudde/algo-dither/raster/core"
)

// ErrEmpty is returned when a palette without entries is requested.
var ErrEmpty = errors.New("palette: palette must contain at least one color")

// Palette is an ordered, immutable, non-empty sequence of colors. Duplicate
// entries are allowed. The zero value is an empty palette and is rejected by
// every consumer.
type Palette struct {
	colors []core.Color
}

// New returns a palette holding a copy of colors.
func New(colors ...core.Color) (Palette, error) {
	if len(colors) == 0 {
		return Palette{}, ErrEmpty
	}

	for i, c := range colors {
		if !core.IsFinite(c.R) || !core.IsFinite(c.G) || !core.IsFinite(c.B) {
			return Palette{}, fmt.Errorf("palette: entry %d is not finite: %v", i, c)
		}
	}

	cp := make([]core.Color, len(colors))
	copy(cp, colors)

	return Palette{colors: cp}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// palette literals.
func MustNew(colors ...core.Color) Palette {
	p, err := New(colors...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseHex builds a palette from "#rrggbb" or "#rgb" strings.
func ParseHex(codes ...string) (Palette, error) {
	if len(codes) == 0 {
		return Palette{}, ErrEmpty
	}

	colors := make([]core.Color, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if !strings.HasPrefix(code, "#") {
			code = "#" + code
		}

		c, err := colorful.Hex(code)
		if err != nil {
			return Palette{}, fmt.Errorf("palette: parse %q: %w", code, err)
		}

		colors = append(colors, core.Color{R: c.R, G: c.G, B: c.B})
	}

	return New(colors...)
}

// FromColorPalette converts a standard library palette. Alpha is ignored.
func FromColorPalette(p color.Palette) (Palette, error) {
	colors := make([]core.Color, 0, len(p))
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		colors = append(colors, core.Color{
			R: core.FromByte(n.R),
			G: core.FromByte(n.G),
			B: core.FromByte(n.B),
		})
	}
	return New(colors...)
}

// Len returns the number of entries.
func (p Palette) Len() int { return len(p.colors) }

// Empty reports whether p has no entries.
func (p Palette) Empty() bool { return len(p.colors) == 0 }

// At returns entry i. It panics when i is out of range, like slice indexing.
func (p Palette) At(i int) core.Color { return p.colors[i] }

// Colors returns a copy of the entries.
func (p Palette) Colors() []core.Color {
	out := make([]core.Color, len(p.colors))
	copy(out, p.colors)
	return out
}

// Contains reports whether c is exactly one of the entries.
func (p Palette) Contains(c core.Color) bool {
	for _, e := range p.colors {
		if e == c {
			return true
		}
	}
	return false
}

// Hex returns the entries formatted as "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p.colors))
	for i, c := range p.colors {
		out[i] = colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	}
	return out
}

// ColorPalette converts p to a standard library palette of opaque RGBA
// colors, preserving order.
func (p Palette) ColorPalette() color.Palette {
	out := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		out[i] = color.RGBA{R: core.ToByte(c.R), G: core.ToByte(c.G), B: core.ToByte(c.B), A: 0xff}
	}
	return out
}
