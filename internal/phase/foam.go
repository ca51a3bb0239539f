package phase

import (
	"math"
	"math/rand"

	"github.com/avalamontes/cepsim/internal/field"
	"github.com/avalamontes/cepsim/internal/geom"
)

// FoamParams configure the pre-inflation foam generator.
type FoamParams struct {
	Size     int     // grid side N
	Strings  int     // number of string segments
	DeltaChi float64 // chirality asymmetry, |delta| <= 1
	Sigma    float64 // Gaussian kernel width
	Samples  int     // sample points per segment, inclusive of both ends
}

func DefaultFoamParams() FoamParams {
	return FoamParams{
		Size:     20,
		Strings:  50,
		DeltaChi: 1e-8,
		Sigma:    1.0,
		Samples:  10,
	}
}

func (p FoamParams) validate() error {
	if p.Size <= 0 {
		return ErrGridSize
	}
	if math.Abs(p.DeltaChi) > 1 {
		return ErrAsymmetry
	}
	if p.Sigma <= 0 {
		return ErrKernelWidth
	}
	if p.Samples < 2 {
		return ErrSamples
	}
	return nil
}

// ChiralityBias maps an asymmetry delta to the probability of drawing
// right-handed (+1) chirality: 0.5 + delta/2.
func ChiralityBias(delta float64) (float64, error) {
	if math.Abs(delta) > 1 {
		return 0, ErrAsymmetry
	}
	return 0.5 + delta/2, nil
}

// Foam builds the initial vorticity field from randomly placed,
// chirality-biased string segments. Each segment is sampled at evenly
// spaced points and a Gaussian blob chi*exp(-d²/2σ²) is accumulated
// over the cubic neighborhood of radius 3σ around each sample, where d
// is the distance from the cell to the whole segment. Overlapping
// sample windows therefore reinforce near the segment interior rather
// than double-count.
func Foam(rng *rand.Rand, p FoamParams) (*field.Field, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	bias, err := ChiralityBias(p.DeltaChi)
	if err != nil {
		return nil, err
	}

	f := field.New(p.Size)
	reach := 3 * p.Sigma
	inv2s2 := 1 / (2 * p.Sigma * p.Sigma)

	for s := 0; s < p.Strings; s++ {
		a := randPoint(rng, p.Size)
		b := randPoint(rng, p.Size)

		chi := -1.0
		if rng.Float64() < bias {
			chi = 1.0
		}

		for n := 0; n < p.Samples; n++ {
			t := float64(n) / float64(p.Samples-1)
			c := geom.Lerp(a, b, t)

			i0, i1 := clampRange(c.X, reach, p.Size)
			j0, j1 := clampRange(c.Y, reach, p.Size)
			k0, k1 := clampRange(c.Z, reach, p.Size)

			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					for k := k0; k < k1; k++ {
						cell := geom.Vec3{X: float64(i), Y: float64(j), Z: float64(k)}
						d := geom.DistToSegment(cell, a, b)
						if d < reach {
							f.Add(i, j, k, chi*math.Exp(-d*d*inv2s2))
						}
					}
				}
			}
		}
	}

	return f, nil
}

func randPoint(rng *rand.Rand, size int) geom.Vec3 {
	s := float64(size)
	return geom.Vec3{
		X: rng.Float64() * s,
		Y: rng.Float64() * s,
		Z: rng.Float64() * s,
	}
}

// clampRange returns the half-open lattice index range covered by
// [center-reach, center+reach], truncated to [0, size). Kernels near
// the boundary are cut off, not wrapped.
func clampRange(center, reach float64, size int) (int, int) {
	lo := int(center - reach)
	if lo < 0 {
		lo = 0
	}
	hi := int(center + reach + 1)
	if hi > size {
		hi = size
	}
	return lo, hi
}
