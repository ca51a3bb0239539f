package phase

import (
	"math/rand"

	"github.com/avalamontes/cepsim/internal/field"
)

// Inject returns a copy of f with independent standard-normal noise,
// scaled by magnitude, added to every cell. This is the "big flash"
// reset perturbation between foam generation and the stretch.
func Inject(rng *rand.Rand, f *field.Field, magnitude float64) *field.Field {
	out := f.Clone()
	raw := out.Raw()
	for i := range raw {
		raw[i] += magnitude * rng.NormFloat64()
	}
	return out
}
