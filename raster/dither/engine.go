package dither

import (
	"fmt"

	"github.com/cwbudde/algo-dither/raster/buffer"
	"github.com/cwbudde/algo-dither/raster/core"
	"github.com/cwbudde/algo-dither/raster/kernel"
)

// State is the lifecycle phase of an [Engine].
type State int

const (
	// StateIdle is an engine that has not started scanning.
	StateIdle State = iota
	// StateScanning is an engine inside Run.
	StateScanning
	// StateDone is an engine whose run has completed.
	StateDone
)

var stateNames = [...]string{"Idle", "Scanning", "Done"}

// String returns the name of the state.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// DiffuseFunc observes one applied kernel tap: delta was added to the
// working color at to, on behalf of the pixel at from.
type DiffuseFunc func(from, to core.Point, delta core.Color)

// Engine performs a single dither run. It is not safe for concurrent use and
// cannot be reused; create one engine per run.
type Engine struct {
	cfg       Config
	quant     *Quantizer
	kern      kernel.Kernel
	state     State
	onDiffuse DiffuseFunc
}

// NewEngine validates cfg and returns an idle engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	quant, err := NewQuantizer(cfg.Palette(), cfg.Metric())
	if err != nil {
		return nil, err
	}

	kern := cfg.Kernel()
	if cfg.Strength() != 1 {
		kern = kern.Scaled(cfg.Strength())
	}

	return &Engine{cfg: cfg, quant: quant, kern: kern}, nil
}

// OnDiffuse registers fn to observe every applied tap. Dropped
// out-of-range taps are not reported. Must be called before Run.
func (e *Engine) OnDiffuse(fn DiffuseFunc) {
	e.onDiffuse = fn
}

// State returns the engine's lifecycle phase.
func (e *Engine) State() State { return e.state }

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Run dithers src, a grid of normalized RGB samples, and returns the result.
// src is not modified; the working buffer is a fresh grid converted through
// the configured color model. Run fails without producing output when src
// has zero area or the engine has already run.
func (e *Engine) Run(src *buffer.Grid) (*Result, error) {
	if e.state != StateIdle {
		return nil, ErrEngineUsed
	}

	if src.Empty() {
		return nil, configErr("raster", ErrZeroArea)
	}

	e.state = StateScanning

	working := e.cfg.ColorModel().ConvertGrid(src)
	width, height := working.Width(), working.Height()

	res := &Result{
		Source:  src,
		Output:  buffer.New(width, height),
		Index:   make([]int, width*height),
		Palette: e.cfg.Palette(),
	}

	for y := range height {
		for x := range width {
			idx, chosen, residual := e.quant.Nearest(working.At(x, y))

			res.Output.Set(x, y, chosen)
			res.Index[y*width+x] = idx

			e.diffuse(working, core.Point{X: x, Y: y}, residual, &res.Stats)
		}
	}

	e.state = StateDone

	return res, nil
}

// diffuse distributes residual from p to the kernel's targets. Each target is
// bounds-checked on both axes; out-of-range contributions are dropped.
func (e *Engine) diffuse(working *buffer.Grid, p core.Point, residual core.Color, stats *Stats) {
	for i := range e.kern.Len() {
		tap := e.kern.Tap(i)
		to := p.Add(tap.DX, tap.DY)
		delta := residual.Scale(tap.Weight)

		if !working.AddAt(to.X, to.Y, delta) {
			stats.Dropped++
			continue
		}

		stats.Applied++

		if e.onDiffuse != nil {
			e.onDiffuse(p, to, delta)
		}
	}
}

// Run is a convenience wrapper that creates a fresh engine for cfg and runs
// it over src.
func Run(src *buffer.Grid, cfg Config) (*Result, error) {
	eng, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	return eng.Run(src)
}
