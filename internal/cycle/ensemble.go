package cycle

import (
	"context"
	"math/rand"
	"sync"
)

// Ensemble runs cycles concurrently. Cycle i draws from its own source
// seeded seedStart+i, so results are reproducible regardless of
// scheduling and no source is shared across goroutines.
type Ensemble struct {
	driver    *Driver
	numCycles int
	seedStart int64
}

func NewEnsemble(d *Driver, numCycles int, seedStart int64) *Ensemble {
	return &Ensemble{driver: d, numCycles: numCycles, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numCycles)
	errs := make([]error, e.numCycles)

	var wg sync.WaitGroup
	for i := 0; i < e.numCycles; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			results[idx], errs[idx] = e.driver.Run(ctx, rng)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
