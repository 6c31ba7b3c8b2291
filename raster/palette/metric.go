package palette

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/core"
)

// Metric selects how the distance between two colors is measured.
type Metric int

const (
	// MetricWeighted is the luminance-weighted squared Euclidean distance
	// 0.299*dr^2 + 0.587*dg^2 + 0.114*db^2. It uses the same weights as
	// [colormodel.LuminanceAccurate], so gray palettes collapse to a 1-D
	// comparison. It is a deliberate simplification, not a color-difference
	// model.
	MetricWeighted Metric = iota
	// MetricLab is the Euclidean distance in CIE L*a*b* (sRGB, D65).
	MetricLab
	// MetricCIEDE2000 is the CIEDE2000 color difference.
	MetricCIEDE2000

	metricCount // sentinel for validation
)

var metricNames = [metricCount]string{"weighted", "lab", "ciede2000"}

// String returns the configuration name of the metric.
func (m Metric) String() string {
	if m.Valid() {
		return metricNames[m]
	}
	return fmt.Sprintf("Metric(%d)", m)
}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	return m >= 0 && m < metricCount
}

// Metrics returns all known metrics in declaration order.
func Metrics() []Metric {
	out := make([]Metric, metricCount)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

// ParseMetric resolves a metric by its configuration name.
func ParseMetric(name string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range metricNames {
		if n == key {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("palette: unknown metric %q", name)
}

// Distance returns a non-negative dissimilarity between a and b. Only the
// ordering of results is meaningful; values of different metrics are not
// comparable.
func (m Metric) Distance(a, b core.Color) float64 {
	switch m {
	case MetricLab:
		return toColorful(a).DistanceLab(toColorful(b))
	case MetricCIEDE2000:
		return toColorful(a).DistanceCIEDE2000(toColorful(b))
	default:
		return Weighted(a, b)
	}
}

// Weighted is the default distance metric. Products are rounded to float64
// before summing so results are identical on every architecture.
func Weighted(a, b core.Color) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return float64(colormodel.WeightR*dr*dr) + float64(colormodel.WeightG*dg*dg) + float64(colormodel.WeightB*db*db)
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}
