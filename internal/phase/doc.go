// Package phase implements the grid transformations of one cosmological
// cycle:
//
//   - [Foam]: biased-chirality string segments rasterized as Gaussian
//     vorticity blobs into a fresh cubic field
//   - [Inject]: cellwise Gaussian reset perturbation
//   - [Stretch]: nearest-neighbor upsampling with power-law dilution
//   - [Oscillate]: iterative parametric resonance with chiral injection
//
// Every transform returns a new field; inputs are never mutated. All
// stochastic transforms take an explicit *rand.Rand so seeding and
// parallel execution stay under the caller's control.
package phase
