package phase

import (
	"math"
	"math/rand"

	"github.com/avalamontes/cepsim/internal/field"
)

// Step spacing of the reheating clock.
const OscDt = 0.1

// OscillateParams configure the reheating resonance.
type OscillateParams struct {
	Steps    int     // number of sequential update steps M
	Epsilon  float64 // gain amplitude, |epsilon| < 1
	Omega    float64 // angular frequency
	DeltaChi float64 // chiral injection magnitude
}

func DefaultOscillateParams() OscillateParams {
	return OscillateParams{
		Steps:    50,
		Epsilon:  0.01,
		Omega:    0.2 * math.Pi,
		DeltaChi: 1e-8,
	}
}

// Oscillate applies Steps parametric-resonance updates to a copy of f.
// At step s (t = s*OscDt) every cell is multiplied by 1+ε·cos(ωt) and
// then perturbed by δ·sin(ωt)-scaled standard-normal noise. The
// multiply-then-add order per step is part of the contract: gain and
// injection both track the advancing clock, so steps do not commute.
// The returned trace holds the field sum after each step.
func Oscillate(rng *rand.Rand, f *field.Field, p OscillateParams) (*field.Field, []float64, error) {
	if p.Steps < 0 {
		return nil, nil, ErrSteps
	}
	if math.Abs(p.Epsilon) >= 1 {
		return nil, nil, ErrGain
	}

	out := f.Clone()
	raw := out.Raw()
	trace := make([]float64, 0, p.Steps)

	for s := 0; s < p.Steps; s++ {
		t := float64(s) * OscDt
		gain := 1 + p.Epsilon*math.Cos(p.Omega*t)
		inj := p.DeltaChi * math.Sin(p.Omega*t)

		for i := range raw {
			raw[i] = raw[i]*gain + inj*rng.NormFloat64()
		}
		trace = append(trace, out.Sum())
	}

	return out, trace, nil
}
