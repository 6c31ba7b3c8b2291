// Package kernel describes error-diffusion kernels: fixed lists of taps that
// say how much of a pixel's quantization error each not-yet-visited
// neighbor receives.
package kernel

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-dither/raster/core"
)

var (
	// ErrEmpty is returned for a kernel without taps.
	ErrEmpty = errors.New("kernel: kernel must have at least one tap")
	// ErrNonCausal is returned for a tap that targets the current pixel or
	// one already visited in row-major order.
	ErrNonCausal = errors.New("kernel: tap is not causal")
)

// Tap diffuses Weight times the residual to the pixel at offset (DX, DY).
type Tap struct {
	DX, DY int
	Weight float64
}

// Causal reports whether the tap only reaches pixels after the current one
// in row-major order: DY > 0, or DY == 0 and DX > 0.
func (t Tap) Causal() bool {
	return t.DY > 0 || (t.DY == 0 && t.DX > 0)
}

// Kernel is an immutable, validated list of causal taps.
type Kernel struct {
	name string
	taps []Tap
}

// New validates taps and returns a kernel. Weights need not sum to one.
func New(name string, taps ...Tap) (Kernel, error) {
	if len(taps) == 0 {
		return Kernel{}, ErrEmpty
	}

	for i, t := range taps {
		if !t.Causal() {
			return Kernel{}, fmt.Errorf("%w: tap %d at (%d, %d)", ErrNonCausal, i, t.DX, t.DY)
		}
		if !core.IsFinite(t.Weight) {
			return Kernel{}, fmt.Errorf("kernel: tap %d weight is not finite: %v", i, t.Weight)
		}
	}

	cp := make([]Tap, len(taps))
	copy(cp, taps)

	return Kernel{name: name, taps: cp}, nil
}

// MustNew is like New but panics on error.
func MustNew(name string, taps ...Tap) Kernel {
	k, err := New(name, taps...)
	if err != nil {
		panic(err)
	}
	return k
}

// Name returns the kernel's display name.
func (k Kernel) Name() string { return k.name }

// Len returns the number of taps.
func (k Kernel) Len() int { return len(k.taps) }

// Empty reports whether the kernel has no taps. The zero Kernel is empty.
func (k Kernel) Empty() bool { return len(k.taps) == 0 }

// Tap returns tap i.
func (k Kernel) Tap(i int) Tap { return k.taps[i] }

// Taps returns a copy of the taps.
func (k Kernel) Taps() []Tap {
	out := make([]Tap, len(k.taps))
	copy(out, k.taps)
	return out
}

// WeightSum returns the total weight of all taps.
func (k Kernel) WeightSum() float64 {
	var sum float64
	for _, t := range k.taps {
		sum += t.Weight
	}
	return sum
}

// Scaled returns a copy of k with every weight multiplied by strength.
func (k Kernel) Scaled(strength float64) Kernel {
	taps := k.Taps()
	for i := range taps {
		taps[i].Weight *= strength
	}
	return Kernel{name: k.name, taps: taps}
}

// Footprint returns the horizontal extent and row count reached by the taps.
func (k Kernel) Footprint() (minDX, maxDX, rows int) {
	for i, t := range k.taps {
		if i == 0 || t.DX < minDX {
			minDX = t.DX
		}
		if i == 0 || t.DX > maxDX {
			maxDX = t.DX
		}
		if t.DY+1 > rows {
			rows = t.DY + 1
		}
	}
	return minDX, maxDX, rows
}
