package dither

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/decimate"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

const (
	defaultScale    = 1.0
	defaultModel    = colormodel.LuminanceAccurate
	defaultKernel   = kernel.Atkinson
	defaultMetric   = palette.MetricWeighted
	defaultSampling = decimate.Nearest
	defaultStrength = 1.0
	maxStrength     = 1.0
)

type config struct {
	scale    float64
	sampling decimate.Method
	model    colormodel.Model
	kernel   kernel.Kernel
	palette  palette.Palette
	metric   palette.Metric
	strength float64
}

func defaultConfig() config {
	return config{
		scale:    defaultScale,
		sampling: defaultSampling,
		model:    defaultModel,
		kernel:   defaultKernel.Kernel(),
		palette:  palette.Gray(2),
		metric:   defaultMetric,
		strength: defaultStrength,
	}
}

// Option configures a [Config].
type Option func(*config) error

// WithScale sets the decimation factor applied before quantization
// (default 1, must be >= 1 and finite). Non-integer factors are allowed.
func WithScale(scale float64) Option {
	return func(cfg *config) error {
		if err := decimate.ValidateScale(scale); err != nil {
			return configErr("scale", err)
		}

		cfg.scale = scale

		return nil
	}
}

// WithSampling sets the decimation sampling method (default nearest).
func WithSampling(m decimate.Method) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return configErr("sampling", fmt.Errorf("unknown method %d", m))
		}

		cfg.sampling = m

		return nil
	}
}

// WithColorModel sets the working color model (default accurate luminance).
func WithColorModel(m colormodel.Model) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return configErr("color model", fmt.Errorf("unknown model %d", m))
		}

		cfg.model = m

		return nil
	}
}

// WithKernel sets a custom diffusion kernel. Its taps are re-validated, so
// kernels derived through [kernel.Kernel.Scaled] must still be causal with
// finite weights; the zero Kernel is rejected.
func WithKernel(k kernel.Kernel) Option {
	return func(cfg *config) error {
		checked, err := kernel.New(k.Name(), k.Taps()...)
		if err != nil {
			return configErr("kernel", err)
		}

		cfg.kernel = checked

		return nil
	}
}

// WithKernelPreset selects a predefined kernel (default Atkinson).
func WithKernelPreset(p kernel.Preset) Option {
	return func(cfg *config) error {
		if !p.Valid() {
			return configErr("kernel", fmt.Errorf("unknown preset %d", p))
		}

		cfg.kernel = p.Kernel()

		return nil
	}
}

// WithPalette sets the output palette (default black and white).
func WithPalette(p palette.Palette) Option {
	return func(cfg *config) error {
		if p.Empty() {
			return configErr("palette", palette.ErrEmpty)
		}

		cfg.palette = p

		return nil
	}
}

// WithMetric sets the nearest-color distance metric (default weighted RGB).
func WithMetric(m palette.Metric) Option {
	return func(cfg *config) error {
		if !m.Valid() {
			return configErr("metric", fmt.Errorf("unknown metric %d", m))
		}

		cfg.metric = m

		return nil
	}
}

// WithStrength scales every kernel weight (default 1, range [0, 1]).
// Zero disables diffusion, leaving plain nearest-color quantization. Gains
// above one would let the carried error grow without bound along a row.
func WithStrength(s float64) Option {
	return func(cfg *config) error {
		if s < 0 || s > maxStrength || math.IsNaN(s) {
			return configErr("strength", fmt.Errorf("must be in [0, %g]: %f", maxStrength, s))
		}

		cfg.strength = s

		return nil
	}
}

// Config is the immutable parameter set of one dither run.
type Config struct {
	cfg config
}

// NewConfig applies opts over the defaults: scale 1, nearest sampling,
// accurate luminance, Atkinson kernel, black/white palette, weighted metric,
// strength 1. Nil options are ignored.
func NewConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return Config{}, err
		}
	}

	return Config{cfg: cfg}, nil
}

// With returns a copy of c with opts applied. c itself is unchanged.
func (c Config) With(opts ...Option) (Config, error) {
	cfg := c.cfg
	if cfg.palette.Empty() {
		cfg = defaultConfig()
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return Config{}, err
		}
	}

	return Config{cfg: cfg}, nil
}

// validate rejects the zero Config, which was not built by NewConfig.
func (c Config) validate() error {
	if c.cfg.palette.Empty() {
		return configErr("palette", palette.ErrEmpty)
	}
	if c.cfg.kernel.Empty() {
		return configErr("kernel", kernel.ErrEmpty)
	}
	return nil
}

// Scale returns the decimation factor.
func (c Config) Scale() float64 { return c.cfg.scale }

// Sampling returns the decimation sampling method.
func (c Config) Sampling() decimate.Method { return c.cfg.sampling }

// ColorModel returns the working color model.
func (c Config) ColorModel() colormodel.Model { return c.cfg.model }

// Kernel returns the configured kernel before strength scaling.
func (c Config) Kernel() kernel.Kernel { return c.cfg.kernel }

// Palette returns the output palette.
func (c Config) Palette() palette.Palette { return c.cfg.palette }

// Metric returns the distance metric.
func (c Config) Metric() palette.Metric { return c.cfg.metric }

// Strength returns the diffusion strength.
func (c Config) Strength() float64 { return c.cfg.strength }

// String summarizes the configuration for logs.
func (c Config) String() string {
	return fmt.Sprintf("scale=%g sampling=%v model=%v kernel=%s palette=%d metric=%v strength=%g",
		c.cfg.scale, c.cfg.sampling, c.cfg.model, c.cfg.kernel.Name(), c.cfg.palette.Len(), c.cfg.metric, c.cfg.strength)
}
