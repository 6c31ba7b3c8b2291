package kernel

import (
	"fmt"

	"github.com/makeworld-the-better-one/dither/v2"
)

// FromMatrix converts a makeworld error-diffusion matrix into a kernel. In
// that layout the current pixel is the right-most zero of the top row and
// later rows are aligned to the same column origin. Zero entries are
// skipped.
func FromMatrix(name string, m dither.ErrorDiffusionMatrix) (Kernel, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return Kernel{}, ErrEmpty
	}

	cur := -1
	for i, w := range m[0] {
		if w != 0 {
			break
		}
		cur = i
	}
	if cur < 0 {
		return Kernel{}, fmt.Errorf("kernel: matrix %q has no current-pixel slot", name)
	}

	var taps []Tap
	for y, row := range m {
		for x, w := range row {
			if w == 0 {
				continue
			}
			taps = append(taps, Tap{DX: x - cur, DY: y, Weight: float64(w)})
		}
	}

	return New(name, taps...)
}
