// Package tone measures how well a dithered raster preserves the tone of its
// source. Error diffusion trades per-pixel accuracy for local averages, so
// besides raw per-pixel error the package reports error after a box blur,
// which approximates what a viewer perceives at a distance.
package tone

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/colormodel"
)

// Report compares source and output luminance planes.
type Report struct {
	SourceMean float64 // mean source luminance
	OutputMean float64 // mean output luminance
	Bias       float64 // OutputMean - SourceMean
	MeanAbs    float64 // mean absolute per-pixel error
	RMSE       float64 // root mean square per-pixel error
	BlurRMSE   float64 // RMSE after a box blur of Radius
	Radius     int
}

// Luminance returns the gray plane of g under model m. The RGB model has no
// gray derivation of its own; it reports the channel average.
func Luminance(g *buffer.Grid, m colormodel.Model) []float64 {
	if m == colormodel.RGB {
		m = colormodel.LuminanceAverage
	}
	out := make([]float64, g.Len())
	for i, c := range g.Pixels() {
		out[i] = m.Convert(c).R
	}
	return out
}

// Compare measures out against src. Both grids must have equal dimensions.
// radius sets the box blur radius for BlurRMSE; values below 1 use 1.
func Compare(src, out *buffer.Grid, m colormodel.Model, radius int) (Report, error) {
	if src.Width() != out.Width() || src.Height() != out.Height() {
		return Report{}, fmt.Errorf("tone: size mismatch: %dx%d vs %dx%d",
			src.Width(), src.Height(), out.Width(), out.Height())
	}
	if src.Empty() {
		return Report{}, fmt.Errorf("tone: raster has zero area")
	}
	if radius < 1 {
		radius = 1
	}

	a := Luminance(src, m)
	b := Luminance(out, m)

	diff := make([]float64, len(a))
	vecmath.ScaleBlock(diff, a, -1)
	vecmath.AddBlockInPlace(diff, b)

	n := float64(len(a))
	rep := Report{
		SourceMean: mean(a),
		OutputMean: mean(b),
		Radius:     radius,
	}
	rep.Bias = rep.OutputMean - rep.SourceMean

	var absSum, sqSum float64
	for _, d := range diff {
		absSum += math.Abs(d)
		sqSum += d * d
	}
	rep.MeanAbs = absSum / n
	rep.RMSE = math.Sqrt(sqSum / n)

	blurred := BoxBlur(diff, src.Width(), src.Height(), radius)
	var blurSq float64
	for _, d := range blurred {
		blurSq += d * d
	}
	rep.BlurRMSE = math.Sqrt(blurSq / n)

	return rep, nil
}

// BoxBlur averages every sample of a width*height plane with its
// neighbors within radius. Windows are truncated at the edges.
func BoxBlur(plane []float64, width, height, radius int) []float64 {
	sums := make([]float64, len(plane))
	counts := make([]float64, len(plane))
	ones := make([]float64, width)
	for i := range ones {
		ones[i] = 1
	}

	// Vertical pass: accumulate whole rows.
	for y := range height {
		dst := sums[y*width : (y+1)*width]
		cnt := counts[y*width : (y+1)*width]
		for yy := max(0, y-radius); yy <= min(height-1, y+radius); yy++ {
			vecmath.AddBlockInPlace(dst, plane[yy*width:(yy+1)*width])
			vecmath.AddBlockInPlace(cnt, ones)
		}
	}

	// Horizontal pass over the vertical sums.
	out := make([]float64, len(plane))
	for y := range height {
		for x := range width {
			var s, c float64
			for xx := max(0, x-radius); xx <= min(width-1, x+radius); xx++ {
				s += sums[y*width+xx]
				c += counts[y*width+xx]
			}
			out[y*width+x] = s / c
		}
	}
	return out
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
