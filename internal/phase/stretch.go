package phase

import (
	"math"

	"github.com/avalamontes/cepsim/internal/field"
)

// StretchParams configure the inflationary stretch.
type StretchParams struct {
	Factor int // linear upsampling factor k
	Power  int // dilution power p, global scale 1/k^p
}

func DefaultStretchParams() StretchParams {
	return StretchParams{Factor: 4, Power: 3}
}

// Stretch upsamples f by nearest-neighbor replication to side N*k and
// applies the uniform dilution 1/k^p. Values are piecewise-constant
// over k³ blocks before dilution; no interpolation.
func Stretch(f *field.Field, p StretchParams) (*field.Field, error) {
	if p.Factor < 1 {
		return nil, ErrStretchFactor
	}

	dilution := 1 / math.Pow(float64(p.Factor), float64(p.Power))
	newSide := f.Side() * p.Factor
	out := field.New(newSide)

	for i := 0; i < newSide; i++ {
		oi := i / p.Factor
		for j := 0; j < newSide; j++ {
			oj := j / p.Factor
			for k := 0; k < newSide; k++ {
				out.Set(i, j, k, f.At(oi, oj, k/p.Factor)*dilution)
			}
		}
	}

	return out, nil
}
