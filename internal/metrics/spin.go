// Package metrics reduces a simulated vorticity field to its scalar
// diagnostics: the spin parameter λ and the rotation-curve peak
// velocity proxy.
package metrics

import (
	"errors"
	"math"
)

// Calibration anchors: λ=LambdaRef maps to VPeakRef km/s, roughly a
// Milky Way-mass halo at 10 kpc.
const (
	LambdaRef = 0.04
	VPeakRef  = 220.0
)

// ErrZeroVolume indicates a reduction over an empty field.
var ErrZeroVolume = errors.New("metrics: field volume must be positive")

// Lambda computes the spin parameter proxy λ = LambdaRef·(|L|/V)^(1/3)
// from the net angular momentum L and cell count V.
func Lambda(netL float64, volume int) (float64, error) {
	if volume <= 0 {
		return 0, ErrZeroVolume
	}
	return LambdaRef * math.Cbrt(math.Abs(netL)/float64(volume)), nil
}

// VPeak maps λ linearly to a peak rotation velocity in km/s.
func VPeak(lambda float64) float64 {
	return VPeakRef * (lambda / LambdaRef)
}

// Helicity labels the sign of the net angular momentum.
func Helicity(netL float64) string {
	if netL > 0 {
		return "+"
	}
	return "-"
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Std is the population standard deviation.
func Std(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
