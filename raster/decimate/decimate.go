// Package decimate shrinks a source image by a scale factor before it is
// dithered. It is a plain decimation step, not a quality resampler: the
// engine dithers the reduced raster and presentation scales it back up.
package decimate

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
)

// Method selects how source pixels are sampled.
type Method int

const (
	// Nearest picks one source pixel per output pixel.
	Nearest Method = iota
	// Area averages the source pixels covered by each output pixel.
	Area

	methodCount // sentinel for validation
)

var methodNames = [methodCount]string{"nearest", "area"}

// String returns the configuration name of the method.
func (m Method) String() string {
	if m.Valid() {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", m)
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m >= 0 && m < methodCount
}

// ParseMethod resolves a method by its configuration name.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("decimate: unknown method %q", name)
}

// ValidateScale reports whether scale is a usable factor: finite and >= 1.
func ValidateScale(scale float64) error {
	if scale < 1 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return fmt.Errorf("decimate: scale must be >= 1 and finite: %f", scale)
	}
	return nil
}

// Size returns the decimated dimensions round(width/scale) and
// round(height/scale), rounding halves up. A non-empty axis never shrinks
// below one pixel.
func Size(width, height int, scale float64) (int, int) {
	return axis(width, scale), axis(height, scale)
}

func axis(n int, scale float64) int {
	if n <= 0 {
		return 0
	}
	out := int(math.Floor(float64(n)/scale + 0.5))
	if out < 1 {
		out = 1
	}
	return out
}

// Image returns src shrunk by scale using method m. A scale of exactly 1
// returns src unchanged.
func Image(src image.Image, scale float64, m Method) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("decimate: input image is nil")
	}
	if err := ValidateScale(scale); err != nil {
		return nil, err
	}
	if !m.Valid() {
		return nil, fmt.Errorf("decimate: unknown method %d", m)
	}

	if scale == 1 {
		return src, nil
	}

	bounds := src.Bounds()
	width, height := Size(bounds.Dx(), bounds.Dy(), scale)
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, height)), nil
	}

	switch m {
	case Area:
		return transform.Resize(src, width, height, transform.Box), nil
	default:
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
		return dst, nil
	}
}
