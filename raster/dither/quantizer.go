package dither

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/palette"
)

// Quantizer finds the nearest palette entry for a working color.
type Quantizer struct {
	palette palette.Palette
	metric  palette.Metric
}

// NewQuantizer returns a quantizer over p using metric m.
func NewQuantizer(p palette.Palette, m palette.Metric) (*Quantizer, error) {
	if p.Empty() {
		return nil, configErr("palette", palette.ErrEmpty)
	}
	if !m.Valid() {
		return nil, configErr("metric", fmt.Errorf("unknown metric %d", m))
	}

	return &Quantizer{palette: p, metric: m}, nil
}

// Nearest returns the index and value of the palette entry closest to c,
// and the residual c - chosen.
//
// The scan starts at entry 0 with an unbounded best distance and keeps the
// running minimum under strict less-than, so ties resolve to the entry
// listed first.
func (q *Quantizer) Nearest(c core.Color) (index int, chosen, residual core.Color) {
	best := math.Inf(1)
	for i := range q.palette.Len() {
		if d := q.metric.Distance(c, q.palette.At(i)); d < best {
			best = d
			index = i
		}
	}

	chosen = q.palette.At(index)

	return index, chosen, c.Sub(chosen)
}

// Palette returns the quantizer's palette.
func (q *Quantizer) Palette() palette.Palette { return q.palette }

// Metric returns the quantizer's distance metric.
func (q *Quantizer) Metric() palette.Metric { return q.metric }
