// Package webdemo drives the interactive browser preview: it holds one
// source image and re-dithers it whenever the parameters change.
package webdemo

import (
	"fmt"
	"image"

	"github.com/cwbudde/algo-dither/measure/tone"
	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/dither"
	"github.com/cwbudde/algo-dither/raster/imageconv"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

const toneRadius = 2

// Params are the user controls of the preview.
type Params struct {
	Scale    int
	Model    string
	Kernel   string
	Palette  string
	Strength float64
}

// DefaultParams returns the preview defaults: scale 5, accurate luminance,
// Atkinson, black and white.
func DefaultParams() Params {
	return Params{
		Scale:    5,
		Model:    colormodel.LuminanceAccurate.String(),
		Kernel:   kernel.Atkinson.String(),
		Palette:  palette.DefaultName,
		Strength: 1,
	}
}

// Engine keeps the source image and the latest dithered frame.
type Engine struct {
	src    image.Image
	params Params
	model  colormodel.Model
	result *dither.Result
	frame  *image.RGBA
}

// NewEngine wraps src and renders the first frame with DefaultParams.
func NewEngine(src image.Image) (*Engine, error) {
	if src == nil {
		return nil, fmt.Errorf("webdemo: source image is nil")
	}
	e := &Engine{src: src}
	if err := e.SetParams(DefaultParams()); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineRGBA builds an engine from a raw RGBA8 pixel buffer, the
// layout of a canvas ImageData.
func NewEngineRGBA(width, height int, pix []byte) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("webdemo: invalid size %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("webdemo: pixel buffer has %d bytes, want %d", len(pix), width*height*4)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	return NewEngine(img)
}

// SetParams validates p and renders a new frame. On error the previous
// frame and parameters are kept.
func (e *Engine) SetParams(p Params) error {
	cfg, err := p.config()
	if err != nil {
		return err
	}

	res, err := dither.Process(e.src, cfg)
	if err != nil {
		return err
	}

	e.params = p
	e.model = cfg.ColorModel()
	e.result = res
	e.frame = imageconv.ToRGBA(res.Output)
	return nil
}

func (p Params) config() (dither.Config, error) {
	if p.Scale < 1 {
		return dither.Config{}, fmt.Errorf("webdemo: scale must be >= 1: %d", p.Scale)
	}

	m, err := colormodel.Parse(p.Model)
	if err != nil {
		return dither.Config{}, err
	}
	k, err := kernel.ParsePreset(p.Kernel)
	if err != nil {
		return dither.Config{}, err
	}
	pal, err := palette.Named(p.Palette)
	if err != nil {
		return dither.Config{}, err
	}

	return dither.NewConfig(
		dither.WithScale(float64(p.Scale)),
		dither.WithColorModel(m),
		dither.WithKernelPreset(k),
		dither.WithPalette(pal),
		dither.WithStrength(p.Strength),
	)
}

// Params returns the parameters of the current frame.
func (e *Engine) Params() Params { return e.params }

// Width returns the frame width.
func (e *Engine) Width() int { return e.frame.Rect.Dx() }

// Height returns the frame height.
func (e *Engine) Height() int { return e.frame.Rect.Dy() }

// Frame returns the current frame as RGBA8 bytes. The slice is owned by
// the engine and replaced on the next SetParams.
func (e *Engine) Frame() []byte { return e.frame.Pix }

// Image returns the current frame.
func (e *Engine) Image() *image.RGBA { return e.frame }

// Tone measures the current frame against the decimated source.
func (e *Engine) Tone() (tone.Report, error) {
	return tone.Compare(e.result.Source, e.result.Output, e.model, toneRadius)
}
