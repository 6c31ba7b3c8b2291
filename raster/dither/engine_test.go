package dither

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-dither/internal/testutil"
	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

func mustConfig(t *testing.T, opts ...Option) Config {
	t.Helper()

	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatal(err)
	}

	return cfg
}

func TestGrayscaleCollapseGolden(t *testing.T) {
	// Uniform mid gray through accurate luminance and Floyd-Steinberg onto
	// black/white settles into a checkerboard.
	cfg := mustConfig(t,
		WithColorModel(colormodel.LuminanceAccurate),
		WithKernelPreset(kernel.FloydSteinberg),
		WithPalette(palette.Gray(2)),
	)

	res, err := Run(buffer.Uniform(4, 4, core.Gray(0.5)), cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{
		0, 1, 0, 1,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
	}
	testutil.RequireIndicesEqual(t, res.Index, want, 4)
}

func TestAtkinsonGolden(t *testing.T) {
	cfg := mustConfig(t,
		WithColorModel(colormodel.LuminanceAccurate),
		WithKernelPreset(kernel.Atkinson),
	)

	res, err := Run(buffer.Uniform(4, 4, core.Gray(0.5)), cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{
		0, 1, 1, 0,
		1, 0, 0, 1,
		1, 0, 0, 1,
		0, 1, 1, 0,
	}
	testutil.RequireIndicesEqual(t, res.Index, want, 4)
}

func TestDeterminism(t *testing.T) {
	src := testutil.GradientGrid(17, 9)
	cfg := mustConfig(t,
		WithColorModel(colormodel.RGB),
		WithKernelPreset(kernel.FloydSteinberg),
		WithPalette(mustNamed(t, "ega")),
	)

	first, err := Run(src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Run(src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range first.Output.Pixels() {
		if second.Output.Pixels()[i] != c {
			t.Fatalf("pixel %d differs between runs: %v vs %v", i, c, second.Output.Pixels()[i])
		}
	}
	testutil.RequireIndicesEqual(t, second.Index, first.Index, 17)
}

func TestPaletteClosure(t *testing.T) {
	src := testutil.GradientGrid(23, 11)

	for _, model := range colormodel.Models() {
		for _, preset := range kernel.Presets() {
			t.Run(model.String()+"/"+preset.String(), func(t *testing.T) {
				pal := mustNamed(t, "cga")
				res, err := Run(src, mustConfig(t,
					WithColorModel(model),
					WithKernelPreset(preset),
					WithPalette(pal),
				))
				if err != nil {
					t.Fatal(err)
				}

				for i, c := range res.Output.Pixels() {
					if !pal.Contains(c) {
						t.Fatalf("pixel %d = %v is not a palette entry", i, c)
					}
					if pal.At(res.Index[i]) != c {
						t.Fatalf("pixel %d index %d does not match color %v", i, res.Index[i], c)
					}
				}
			})
		}
	}
}

func TestCausality(t *testing.T) {
	for _, preset := range kernel.Presets() {
		t.Run(preset.String(), func(t *testing.T) {
			eng, err := NewEngine(mustConfig(t, WithKernelPreset(preset)))
			if err != nil {
				t.Fatal(err)
			}

			eng.OnDiffuse(func(from, to core.Point, _ core.Color) {
				if !from.Before(to) {
					t.Fatalf("tap from %v wrote to visited pixel %v", from, to)
				}
			})

			if _, err := eng.Run(testutil.GradientGrid(9, 6)); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestEdgeSafetySinglePixel(t *testing.T) {
	for _, preset := range kernel.Presets() {
		t.Run(preset.String(), func(t *testing.T) {
			src := buffer.Uniform(1, 1, core.Gray(0.7))
			res, err := Run(src, mustConfig(t,
				WithKernelPreset(preset),
				WithColorModel(colormodel.LuminanceAverage),
			))
			if err != nil {
				t.Fatal(err)
			}

			if res.Stats.Applied != 0 {
				t.Fatalf("applied %d taps on a 1x1 raster", res.Stats.Applied)
			}
			if res.Stats.Dropped != preset.Kernel().Len() {
				t.Fatalf("dropped %d taps, want %d", res.Stats.Dropped, preset.Kernel().Len())
			}
			if res.Index[0] != 1 {
				t.Fatalf("0.7 gray quantized to index %d, want white", res.Index[0])
			}
		})
	}
}

func TestNoRowWrap(t *testing.T) {
	// Error from the last column must not land in column 0 of the next row.
	src := buffer.New(3, 2)
	src.Set(2, 0, core.Gray(0.4))

	eng, err := NewEngine(mustConfig(t,
		WithKernel(kernel.MustNew("right", kernel.Tap{DX: 1, DY: 0, Weight: 1})),
		WithColorModel(colormodel.LuminanceAverage),
	))
	if err != nil {
		t.Fatal(err)
	}

	eng.OnDiffuse(func(from, to core.Point, _ core.Color) {
		if to.X >= 3 || (from.X == 2 && to.Y != from.Y) {
			t.Fatalf("tap from %v wrapped to %v", from, to)
		}
	})

	res, err := eng.Run(src)
	if err != nil {
		t.Fatal(err)
	}

	if res.Stats.Dropped != 2 {
		t.Fatalf("dropped = %d, want 2 (one per row end)", res.Stats.Dropped)
	}
	if res.Index[3] != 0 {
		t.Fatalf("pixel (0, 1) = index %d, want black", res.Index[3])
	}
}

func TestConservationInteriorPixel(t *testing.T) {
	// Only the center pixel carries error; everything it diffuses must sum
	// to its residual because Floyd-Steinberg weights sum to one.
	src := buffer.New(5, 5)
	center := core.Point{X: 2, Y: 2}
	src.Set(center.X, center.Y, core.Gray(0.3))

	eng, err := NewEngine(mustConfig(t,
		WithKernelPreset(kernel.FloydSteinberg),
		WithColorModel(colormodel.RGB),
	))
	if err != nil {
		t.Fatal(err)
	}

	var total core.Color
	eng.OnDiffuse(func(from, _ core.Point, delta core.Color) {
		if from == center {
			total = total.Add(delta)
		}
	})

	if _, err := eng.Run(src); err != nil {
		t.Fatal(err)
	}

	if !total.NearlyEqual(core.Gray(0.3), 1e-12) {
		t.Fatalf("diffused total = %v, want residual %v", total, core.Gray(0.3))
	}
}

func TestTieBreakFirstWins(t *testing.T) {
	pal := palette.MustNew(core.Gray(0), core.Gray(1))
	res, err := Run(buffer.Uniform(1, 1, core.Gray(0.5)), mustConfig(t,
		WithPalette(pal),
		WithColorModel(colormodel.LuminanceAverage),
	))
	if err != nil {
		t.Fatal(err)
	}

	if res.Output.At(0, 0) != core.Gray(0) {
		t.Fatalf("tie resolved to %v, want black", res.Output.At(0, 0))
	}
}

func TestEngineSingleUse(t *testing.T) {
	eng, err := NewEngine(mustConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	if eng.State() != StateIdle {
		t.Fatalf("State = %v, want Idle", eng.State())
	}

	if _, err := eng.Run(buffer.Uniform(2, 2, core.Gray(0.2))); err != nil {
		t.Fatal(err)
	}

	if eng.State() != StateDone {
		t.Fatalf("State = %v, want Done", eng.State())
	}

	if _, err := eng.Run(buffer.Uniform(2, 2, core.Gray(0.2))); !errors.Is(err, ErrEngineUsed) {
		t.Fatalf("second Run error = %v, want ErrEngineUsed", err)
	}
}

func TestRunZeroArea(t *testing.T) {
	eng, err := NewEngine(mustConfig(t))
	if err != nil {
		t.Fatal(err)
	}

	res, err := eng.Run(buffer.New(0, 3))
	if !errors.Is(err, ErrZeroArea) {
		t.Fatalf("error = %v, want ErrZeroArea", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error %T is not a *ConfigError", err)
	}

	if res != nil {
		t.Fatal("zero-area run produced output")
	}

	if eng.State() != StateIdle {
		t.Fatalf("State = %v, want Idle after rejected run", eng.State())
	}
}

func TestRunDoesNotMutateSource(t *testing.T) {
	src := testutil.GradientGrid(6, 4)
	before := src.Clone()

	if _, err := Run(src, mustConfig(t)); err != nil {
		t.Fatal(err)
	}

	for i, c := range before.Pixels() {
		if src.Pixels()[i] != c {
			t.Fatalf("source pixel %d changed: %v -> %v", i, c, src.Pixels()[i])
		}
	}
}

func TestZeroConfigRejected(t *testing.T) {
	_, err := NewEngine(Config{})
	if !errors.Is(err, palette.ErrEmpty) {
		t.Fatalf("error = %v, want palette.ErrEmpty", err)
	}
}

func TestStrengthZeroIsPlainQuantization(t *testing.T) {
	res, err := Run(buffer.Uniform(4, 4, core.Gray(0.4)), mustConfig(t,
		WithStrength(0),
		WithColorModel(colormodel.LuminanceAverage),
	))
	if err != nil {
		t.Fatal(err)
	}

	for i, idx := range res.Index {
		if idx != 0 {
			t.Fatalf("pixel %d = index %d, want black without diffusion", i, idx)
		}
	}
}

func TestHistogramPreservesTone(t *testing.T) {
	res, err := Run(buffer.Uniform(16, 16, core.Gray(0.25)), mustConfig(t,
		WithKernelPreset(kernel.FloydSteinberg),
		WithColorModel(colormodel.LuminanceAverage),
	))
	if err != nil {
		t.Fatal(err)
	}

	hist := res.Histogram()
	if hist[0]+hist[1] != 256 {
		t.Fatalf("histogram total = %d, want 256", hist[0]+hist[1])
	}

	white := float64(hist[1]) / 256
	if white < 0.2 || white > 0.3 {
		t.Fatalf("white fraction = %v, want about 0.25", white)
	}
}

func mustNamed(t *testing.T, name string) palette.Palette {
	t.Helper()

	p, err := palette.Named(name)
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func BenchmarkRunFloydSteinberg(b *testing.B) {
	src := testutil.GradientGrid(256, 256)
	cfg, err := NewConfig(WithKernelPreset(kernel.FloydSteinberg), WithColorModel(colormodel.RGB),
		WithPalette(palette.Gray(16)))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for range b.N {
		if _, err := Run(src, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
