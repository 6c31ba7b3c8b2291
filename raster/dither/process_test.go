package dither

import (
	"image"
	"image/color"
	"testing"

	"github.com/cwbudde/algo-dither/internal/testutil"
	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/decimate"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

func TestProcessDecimatesFirst(t *testing.T) {
	for _, m := range []decimate.Method{decimate.Nearest, decimate.Area} {
		t.Run(m.String(), func(t *testing.T) {
			cfg := mustConfig(t, WithScale(4), WithSampling(m))

			res, err := Process(testutil.GradientImage(40, 20), cfg)
			if err != nil {
				t.Fatal(err)
			}
			if res.Width() != 10 || res.Height() != 5 {
				t.Fatalf("result = %dx%d, want 10x5", res.Width(), res.Height())
			}

			img, ok := res.Image().(*image.Paletted)
			if !ok {
				t.Fatalf("Image() = %T, want *image.Paletted", res.Image())
			}
			if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
				t.Fatalf("image bounds = %v", b)
			}
			if res.Source == nil || res.Source.Width() != 10 || res.Source.Height() != 5 {
				t.Fatalf("Source = %v, want the 10x5 decimated grid", res.Source)
			}

			for i, idx := range res.Index {
				if int(img.Pix[i]) != idx {
					t.Fatalf("paletted index %d = %d, want %d", i, img.Pix[i], idx)
				}
			}
		})
	}
}

func TestProcessNilImage(t *testing.T) {
	if _, err := Process(nil, mustConfig(t)); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestNoiseIsDeterministicAcrossEngines(t *testing.T) {
	src := testutil.NoiseGrid(7, 31, 13)
	cfg := mustConfig(t,
		WithKernelPreset(kernel.JarvisJudiceNinke),
		WithPalette(mustNamed(t, "eink7")),
	)

	a, err := Run(src, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireColorsNearlyEqual(t, b.Output.Pixels(), a.Output.Pixels(), 0)
	if a.Stats != b.Stats {
		t.Fatalf("stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
}

func TestImageWidePaletteKeepsChosenColor(t *testing.T) {
	cfg := mustConfig(t, WithPalette(palette.Gray(300)), WithStrength(0))

	res, err := Run(buffer.Uniform(1, 1, core.Gray(1)), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Index[0] != 299 {
		t.Fatalf("Index[0] = %d, want 299", res.Index[0])
	}

	img := res.Image()
	if _, ok := img.(*image.Paletted); ok {
		t.Fatal("a 300-color palette cannot be rendered as *image.Paletted")
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel = %v, want white", got)
	}
}
