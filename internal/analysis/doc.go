// Package analysis cross-checks a closed-form oscillator against independent
// numerical views of the same motion:
//
//   - [Residuals]: finite-difference velocity at each extracted extremum
//   - [DominantFrequency]: FFT peak of the sampled trajectory
//   - [Trace]: frame-by-frame spring stepping from the initial state
//
// # Example
//
//	seq, _ := maxima.Extract(model)
//	worst := analysis.MaxResidual(analysis.Residuals(model, seq))
//	hz, _ := analysis.DominantFrequency(model, 0.01, 4096)
package analysis
