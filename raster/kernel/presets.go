package kernel

import (
	"fmt"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Preset identifies a predefined diffusion kernel.
type Preset int

const (
	// FloydSteinberg is the four-tap kernel over the causal 2x2 neighborhood:
	// 7/16 right, 3/16 below-left, 5/16 below, 1/16 below-right.
	FloydSteinberg Preset = iota
	// Atkinson spreads 1/8 of the error to six neighbors over three rows.
	// Only 3/4 of the error is diffused, which keeps highlights and shadows
	// crisp.
	Atkinson
	Burkes
	FalseFloydSteinberg
	JarvisJudiceNinke
	Sierra
	TwoRowSierra
	SierraLite
	Simple2D
	StevenPigeon
	Stucki

	presetCount // sentinel
)

var presetNames = [presetCount]string{
	"floyd-steinberg", "atkinson", "burkes", "false-floyd-steinberg",
	"jarvis-judice-ninke", "sierra", "two-row-sierra", "sierra-lite",
	"simple-2d", "steven-pigeon", "stucki",
}

// String returns the configuration name of the preset.
func (p Preset) String() string {
	if p.Valid() {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", p)
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < presetCount
}

// Presets returns all presets in declaration order.
func Presets() []Preset {
	out := make([]Preset, presetCount)
	for i := range out {
		out[i] = Preset(i)
	}
	return out
}

// ParsePreset resolves a preset by its configuration name.
func ParsePreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == key {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("kernel: unknown kernel %q", name)
}

// Kernel returns the kernel for p. Unknown presets return the zero Kernel.
func (p Preset) Kernel() Kernel {
	if !p.Valid() {
		return Kernel{}
	}
	return presetKernels[p]
}

var floydSteinberg = MustNew(presetNames[FloydSteinberg],
	Tap{DX: 1, DY: 0, Weight: 7.0 / 16},
	Tap{DX: -1, DY: 1, Weight: 3.0 / 16},
	Tap{DX: 0, DY: 1, Weight: 5.0 / 16},
	Tap{DX: 1, DY: 1, Weight: 1.0 / 16},
)

var atkinson = MustNew(presetNames[Atkinson],
	Tap{DX: 1, DY: 0, Weight: 1.0 / 8},
	Tap{DX: 2, DY: 0, Weight: 1.0 / 8},
	Tap{DX: -1, DY: 1, Weight: 1.0 / 8},
	Tap{DX: 0, DY: 1, Weight: 1.0 / 8},
	Tap{DX: 1, DY: 1, Weight: 1.0 / 8},
	Tap{DX: 0, DY: 2, Weight: 1.0 / 8},
)

var presetKernels = [presetCount]Kernel{
	FloydSteinberg:      floydSteinberg,
	Atkinson:            atkinson,
	Burkes:              mustMatrix(Burkes, dither.Burkes),
	FalseFloydSteinberg: mustMatrix(FalseFloydSteinberg, dither.FalseFloydSteinberg),
	JarvisJudiceNinke:   mustMatrix(JarvisJudiceNinke, dither.JarvisJudiceNinke),
	Sierra:              mustMatrix(Sierra, dither.Sierra),
	TwoRowSierra:        mustMatrix(TwoRowSierra, dither.TwoRowSierra),
	SierraLite:          mustMatrix(SierraLite, dither.SierraLite),
	Simple2D:            mustMatrix(Simple2D, dither.Simple2D),
	StevenPigeon:        mustMatrix(StevenPigeon, dither.StevenPigeon),
	Stucki:              mustMatrix(Stucki, dither.Stucki),
}

func mustMatrix(p Preset, m dither.ErrorDiffusionMatrix) Kernel {
	k, err := FromMatrix(presetNames[p], m)
	if err != nil {
		panic(err)
	}
	return k
}
