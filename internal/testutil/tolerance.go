package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-dither/raster/core"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireColorsNearlyEqual is RequireSliceNearlyEqual for colors; every
// channel is compared with absolute tolerance eps.
func RequireColorsNearlyEqual(t *testing.T, got, want []core.Color, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		d := math.Max(math.Abs(got[i].R-want[i].R), math.Max(math.Abs(got[i].G-want[i].G), math.Abs(got[i].B-want[i].B)))
		if d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireIndicesEqual fails t if the palette index rasters differ; the
// mismatch is reported as an (x, y) coordinate for a raster of the given
// width.
func RequireIndicesEqual(t *testing.T, got, want []int, width int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if width <= 0 {
		width = len(got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("pixel (%d, %d): got index %d, want %d\ngot  %v\nwant %v",
				i%width, i/width, got[i], want[i], got, want)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
