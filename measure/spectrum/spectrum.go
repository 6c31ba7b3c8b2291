// Package spectrum measures the spatial-frequency character of a dither
// pattern. Good error diffusion concentrates quantization noise at high
// spatial frequencies ("blue noise"); the radially averaged power spectrum
// makes that visible as a single curve.
package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Profile is a radially averaged power spectrum. Bin k covers radial
// frequency Frequency[k] in cycles per pixel; bin 0 is DC. Frequencies
// beyond 0.5 cycles per pixel (the diagonal corners) fold into the last bin.
type Profile struct {
	Frequency []float64
	Energy    []float64 // summed power per bin
	Count     []int     // spectrum samples per bin
}

// Mean returns the average power of bin k, or 0 for an empty bin.
func (p Profile) Mean(k int) float64 {
	if k < 0 || k >= len(p.Count) || p.Count[k] == 0 {
		return 0
	}
	return p.Energy[k] / float64(p.Count[k])
}

// Total returns the summed power over all bins.
func (p Profile) Total() float64 {
	var sum float64
	for _, e := range p.Energy {
		sum += e
	}
	return sum
}

// HighFrequencyRatio returns the share of power at radial frequencies
// strictly above split (cycles per pixel). A profile without power yields 0.
func (p Profile) HighFrequencyRatio(split float64) float64 {
	total := p.Total()
	if total == 0 {
		return 0
	}

	var high float64
	for k, f := range p.Frequency {
		if f > split {
			high += p.Energy[k]
		}
	}
	return high / total
}

// Radial computes the radially averaged power spectrum of a row-major plane
// of width*height samples. The mean is removed first so DC carries only
// rounding residue. Axes are zero-padded to a power of two.
func Radial(plane []float64, width, height int) (Profile, error) {
	if width <= 0 || height <= 0 {
		return Profile{}, fmt.Errorf("spectrum: dimensions must be > 0: %dx%d", width, height)
	}
	if len(plane) != width*height {
		return Profile{}, fmt.Errorf("spectrum: plane has %d samples, want %d", len(plane), width*height)
	}

	padW, padH := nextPowerOf2(width), nextPowerOf2(height)

	var mean float64
	for _, v := range plane {
		mean += v
	}
	mean /= float64(len(plane))

	data := make([]complex128, padW*padH)
	for y := range height {
		for x := range width {
			data[y*padW+x] = complex(plane[y*width+x]-mean, 0)
		}
	}

	if err := transform2D(data, padW, padH); err != nil {
		return Profile{}, err
	}

	re := make([]float64, len(data))
	im := make([]float64, len(data))
	for i, c := range data {
		re[i] = real(c)
		im[i] = imag(c)
	}

	power := make([]float64, len(data))
	vecmath.Power(power, re, im)

	return binRadial(power, padW, padH), nil
}

// transform2D applies a forward FFT to every row, then to every column.
func transform2D(data []complex128, width, height int) error {
	if width > 1 {
		plan, err := algofft.NewPlan64(width)
		if err != nil {
			return fmt.Errorf("spectrum: row fft plan: %w", err)
		}

		out := make([]complex128, width)
		for y := range height {
			row := data[y*width : (y+1)*width]
			if err := plan.Forward(out, row); err != nil {
				return fmt.Errorf("spectrum: row fft: %w", err)
			}
			copy(row, out)
		}
	}

	if height > 1 {
		plan, err := algofft.NewPlan64(height)
		if err != nil {
			return fmt.Errorf("spectrum: column fft plan: %w", err)
		}

		col := make([]complex128, height)
		out := make([]complex128, height)
		for x := range width {
			for y := range height {
				col[y] = data[y*width+x]
			}
			if err := plan.Forward(out, col); err != nil {
				return fmt.Errorf("spectrum: column fft: %w", err)
			}
			for y := range height {
				data[y*width+x] = out[y]
			}
		}
	}

	return nil
}

func binRadial(power []float64, width, height int) Profile {
	bins := max(width, height) / 2
	if bins < 1 {
		bins = 1
	}

	p := Profile{
		Frequency: make([]float64, bins+1),
		Energy:    make([]float64, bins+1),
		Count:     make([]int, bins+1),
	}
	for k := range p.Frequency {
		p.Frequency[k] = 0.5 * float64(k) / float64(bins)
	}

	for ky := range height {
		fy := signedFrequency(ky, height)
		for kx := range width {
			fx := signedFrequency(kx, width)
			rho := math.Hypot(fx, fy)

			k := int(math.Round(rho * 2 * float64(bins)))
			if k > bins {
				k = bins
			}

			p.Energy[k] += power[ky*width+kx]
			p.Count[k]++
		}
	}

	return p
}

// signedFrequency maps FFT bin k of an n-point transform to cycles per pixel
// in [-0.5, 0.5].
func signedFrequency(k, n int) float64 {
	if n <= 1 {
		return 0
	}
	if k > n/2 {
		k -= n
	}
	return float64(k) / float64(n)
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
