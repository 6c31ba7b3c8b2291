// Package colormodel converts normalized RGB samples into the working
// representation a dither pass quantizes: full color, or one of two
// grayscale luminance derivations.
package colormodel

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/core"
)

// Model selects the working color representation.
type Model int

const (
	// RGB passes colors through unchanged; quantization happens in full color.
	RGB Model = iota
	// LuminanceAccurate is the weighted quadratic mean
	// sqrt(0.299*r^2 + 0.587*g^2 + 0.114*b^2).
	LuminanceAccurate
	// LuminanceAverage is the arithmetic mean (r+g+b)/3.
	LuminanceAverage

	modelCount // sentinel for validation
)

// Channel weights shared with the default distance metric.
const (
	WeightR = 0.299
	WeightG = 0.587
	WeightB = 0.114
)

var modelNames = [modelCount]string{"rgb", "accurate", "average"}

// String returns the configuration name of the model.
func (m Model) String() string {
	if m.Valid() {
		return modelNames[m]
	}
	return fmt.Sprintf("Model(%d)", m)
}

// Valid reports whether m is a known model.
func (m Model) Valid() bool {
	return m >= 0 && m < modelCount
}

// Models returns all known models in declaration order.
func Models() []Model {
	out := make([]Model, modelCount)
	for i := range out {
		out[i] = Model(i)
	}
	return out
}

// Parse resolves a model by its configuration name (case-insensitive).
func Parse(name string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range modelNames {
		if n == key {
			return Model(i), nil
		}
	}
	return 0, fmt.Errorf("colormodel: unknown model %q", name)
}

// Convert maps an RGB sample to its working color. Inputs are not clamped.
// Unknown models behave like RGB.
func (m Model) Convert(c core.Color) core.Color {
	switch m {
	case LuminanceAccurate:
		return core.Gray(accurate(c))
	case LuminanceAverage:
		return core.Gray((c.R + c.G + c.B) / 3)
	default:
		return c
	}
}

// ConvertGrid returns a fresh grid holding the working color of every pixel
// in src. src is not modified.
func (m Model) ConvertGrid(src *buffer.Grid) *buffer.Grid {
	return src.Map(m.Convert)
}

// accurate rounds each product to float64 before summing so the result does
// not depend on whether the target fuses multiply-add.
func accurate(c core.Color) float64 {
	return math.Sqrt(float64(WeightR*c.R*c.R) + float64(WeightG*c.G*c.G) + float64(WeightB*c.B*c.B))
}
