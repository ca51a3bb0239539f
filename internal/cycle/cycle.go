// Package cycle sequences one full cosmological cycle over a vorticity
// field: Foam -> Inject -> Stretch -> Oscillate -> Reduce.
package cycle

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/avalamontes/cepsim/internal/field"
	"github.com/avalamontes/cepsim/internal/metrics"
	"github.com/avalamontes/cepsim/internal/phase"
)

// Config carries every knob of the per-cycle pipeline.
type Config struct {
	Foam        phase.FoamParams
	InjectDelta float64 // reset-injection magnitude
	Stretch     phase.StretchParams
	Oscillate   phase.OscillateParams
}

func DefaultConfig() Config {
	return Config{
		Foam:        phase.DefaultFoamParams(),
		InjectDelta: 1e-8,
		Stretch:     phase.DefaultStretchParams(),
		Oscillate:   phase.DefaultOscillateParams(),
	}
}

// Result is the immutable record of one completed cycle. Field holds
// the final post-reheating grid for optional raw export; Trace holds
// the per-oscillation-step net L history.
type Result struct {
	NetLPre        float64
	NetLPostInfl   float64
	NetLPostReheat float64
	Lambda         float64
	VPeak          float64
	Helicity       string
	Trace          []float64
	Field          *field.Field
}

// Driver runs cycles under a fixed configuration. Each Run is
// independent; no state carries over between invocations.
type Driver struct {
	cfg Config
}

func New(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// Run executes one cycle, drawing all randomness from rng. The context
// is checked between phases; a canceled run returns ctx.Err().
func (d *Driver) Run(ctx context.Context, rng *rand.Rand) (*Result, error) {
	f, err := phase.Foam(rng, d.cfg.Foam)
	if err != nil {
		return nil, fmt.Errorf("foam: %w", err)
	}
	netLPre := f.Sum()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f = phase.Inject(rng, f, d.cfg.InjectDelta)

	f, err = phase.Stretch(f, d.cfg.Stretch)
	if err != nil {
		return nil, fmt.Errorf("stretch: %w", err)
	}
	netLPostInfl := f.Sum()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, trace, err := phase.Oscillate(rng, f, d.cfg.Oscillate)
	if err != nil {
		return nil, fmt.Errorf("oscillate: %w", err)
	}
	netLPostReheat := f.Sum()

	lambda, err := metrics.Lambda(netLPostReheat, f.Volume())
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}

	return &Result{
		NetLPre:        netLPre,
		NetLPostInfl:   netLPostInfl,
		NetLPostReheat: netLPostReheat,
		Lambda:         lambda,
		VPeak:          metrics.VPeak(lambda),
		Helicity:       metrics.Helicity(netLPostReheat),
		Trace:          trace,
		Field:          f,
	}, nil
}

// RunN executes n sequential cycles sharing a single random source,
// matching the reference draw ordering.
func (d *Driver) RunN(ctx context.Context, rng *rand.Rand, n int) ([]*Result, error) {
	results := make([]*Result, 0, n)
	for i := 0; i < n; i++ {
		res, err := d.Run(ctx, rng)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// Lambdas collects the spin parameter across results.
func Lambdas(results []*Result) []float64 {
	xs := make([]float64, len(results))
	for i, r := range results {
		xs[i] = r.Lambda
	}
	return xs
}
