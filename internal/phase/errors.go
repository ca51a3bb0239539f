package phase

import "errors"

// Configuration errors. Every transform validates its parameters up
// front so bad knobs fail fast instead of surfacing as NaN downstream.
var (
	// ErrGridSize indicates a non-positive grid side.
	ErrGridSize = errors.New("phase: grid size must be positive")

	// ErrAsymmetry indicates |delta| > 1, which would push the
	// chirality bias outside [0,1].
	ErrAsymmetry = errors.New("phase: asymmetry out of [-1,1]")

	// ErrKernelWidth indicates a non-positive Gaussian kernel width.
	ErrKernelWidth = errors.New("phase: kernel width must be positive")

	// ErrSamples indicates too few samples to cover both segment ends.
	ErrSamples = errors.New("phase: segment samples must be at least 2")

	// ErrStretchFactor indicates a stretch factor below 1.
	ErrStretchFactor = errors.New("phase: stretch factor must be a positive integer")

	// ErrGain indicates |epsilon| >= 1, which lets the parametric gain
	// reach zero or go negative.
	ErrGain = errors.New("phase: oscillation amplitude must satisfy |epsilon| < 1")

	// ErrSteps indicates a negative oscillation step count.
	ErrSteps = errors.New("phase: step count must be non-negative")
)
