// Package analysis provides frequency-domain tools for oscillation
// traces recorded during the reheating phase.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum zero-pads data to the next power of two and returns
// magnitudes for the non-negative frequency half of its FFT.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	coeffs := fft.FFTReal(padded)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC bin of ps and converts
// it to a frequency given the sample spacing dt. Returns 0 when the
// spectrum is flat or too short.
func DominantFrequency(ps []float64, dt float64) float64 {
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	// ps covers half the padded window, so the window is 2*len(ps) samples
	return float64(maxIdx) / (float64(2*len(ps)) * dt)
}
