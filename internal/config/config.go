// Package config loads dither parameters for the applications from a YAML
// file and XITHER_* environment variables and turns them into
// [dither.Option] values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-dither/raster/colormodel"
	"github.com/cwbudde/algo-dither/raster/decimate"
	"github.com/cwbudde/algo-dither/raster/dither"
	"github.com/cwbudde/algo-dither/raster/kernel"
	"github.com/cwbudde/algo-dither/raster/palette"
)

// Environment variable names read by FromEnv.
const (
	EnvScale    = "XITHER_SCALE"
	EnvSampling = "XITHER_SAMPLING"
	EnvModel    = "XITHER_MODEL"
	EnvKernel   = "XITHER_KERNEL"
	EnvPalette  = "XITHER_PALETTE"
	EnvColors   = "XITHER_COLORS"
	EnvMetric   = "XITHER_METRIC"
	EnvStrength = "XITHER_STRENGTH"
)

// File is the user-facing parameter set. Empty fields fall back to the
// library defaults. Colors, when set, takes precedence over Palette.
type File struct {
	Scale    float64  `yaml:"scale,omitempty"`
	Sampling string   `yaml:"sampling,omitempty"`
	Model    string   `yaml:"model,omitempty"`
	Kernel   string   `yaml:"kernel,omitempty"`
	Palette  string   `yaml:"palette,omitempty"`
	Colors   []string `yaml:"colors,omitempty"`
	Metric   string   `yaml:"metric,omitempty"`
	Strength *float64 `yaml:"strength,omitempty"`
}

// Load reads a YAML parameter file. Unknown keys are rejected.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return f, nil
}

// Parse decodes YAML parameters. An empty document yields the zero File.
func Parse(data []byte) (File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}

	return f, nil
}

// Marshal encodes f as YAML.
func (f File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Merge returns f with every non-empty field of o applied on top.
func (f File) Merge(o File) File {
	if o.Scale != 0 {
		f.Scale = o.Scale
	}
	if o.Sampling != "" {
		f.Sampling = o.Sampling
	}
	if o.Model != "" {
		f.Model = o.Model
	}
	if o.Kernel != "" {
		f.Kernel = o.Kernel
	}
	if o.Palette != "" {
		f.Palette = o.Palette
		f.Colors = nil
	}
	if len(o.Colors) > 0 {
		f.Colors = o.Colors
	}
	if o.Metric != "" {
		f.Metric = o.Metric
	}
	if o.Strength != nil {
		s := *o.Strength
		f.Strength = &s
	}
	return f
}

// FromEnv returns the parameters set through XITHER_* variables.
func FromEnv() File {
	f := File{
		Scale:    GetFloat(EnvScale, 0),
		Sampling: Get(EnvSampling, ""),
		Model:    Get(EnvModel, ""),
		Kernel:   Get(EnvKernel, ""),
		Palette:  Get(EnvPalette, ""),
		Colors:   GetList(EnvColors),
		Metric:   Get(EnvMetric, ""),
	}
	if Get(EnvStrength, "") != "" {
		s := GetFloat(EnvStrength, 1)
		f.Strength = &s
	}
	return f
}

// Options translates f into dither options.
func (f File) Options() ([]dither.Option, error) {
	var opts []dither.Option

	if f.Scale != 0 {
		opts = append(opts, dither.WithScale(f.Scale))
	}

	if f.Sampling != "" {
		m, err := decimate.ParseMethod(f.Sampling)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithSampling(m))
	}

	if f.Model != "" {
		m, err := colormodel.Parse(f.Model)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithColorModel(m))
	}

	if f.Kernel != "" {
		p, err := kernel.ParsePreset(f.Kernel)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithKernelPreset(p))
	}

	switch {
	case len(f.Colors) > 0:
		p, err := palette.ParseHex(f.Colors...)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithPalette(p))
	case f.Palette != "":
		p, err := palette.Named(f.Palette)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithPalette(p))
	}

	if f.Metric != "" {
		m, err := palette.ParseMetric(f.Metric)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, dither.WithMetric(m))
	}

	if f.Strength != nil {
		opts = append(opts, dither.WithStrength(*f.Strength))
	}

	return opts, nil
}

// Config builds a validated dither configuration from f.
func (f File) Config() (dither.Config, error) {
	opts, err := f.Options()
	if err != nil {
		return dither.Config{}, err
	}
	return dither.NewConfig(opts...)
}
