package dither

import (
	"fmt"
	"image"

	"github.com/cwbudde/algo-dither/raster/decimate"
	"github.com/cwbudde/algo-dither/raster/imageconv"
)

// Process runs the full pipeline on img: decimation by the configured scale,
// normalization to a grid, then one engine run. Result.Source holds the
// decimated grid.
func Process(img image.Image, cfg Config) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("dither: input image is nil")
	}

	eng, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	small, err := decimate.Image(img, cfg.Scale(), cfg.Sampling())
	if err != nil {
		return nil, fmt.Errorf("dither: decimate: %w", err)
	}

	return eng.Run(imageconv.FromImage(small))
}

// Image renders the result for encoding. Palettes that fit 8-bit indices
// yield an *image.Paletted; larger ones an *image.RGBA of the chosen colors.
func (r *Result) Image() image.Image {
	if r.Palette.Len() <= imageconv.MaxPalettedColors {
		if img, err := imageconv.ToPaletted(r.Width(), r.Height(), r.Index, r.Palette); err == nil {
			return img
		}
	}
	return imageconv.ToRGBA(r.Output)
}
