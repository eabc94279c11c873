// Package oscillator provides the closed-form model of an underdamped
// harmonic oscillator.
//
// The displacement follows a damped cosine:
//
//	y(t) = A·e^(−c·t)·cos(ω·t + φ),  ω = sqrt(k − c²)
//
// A [Model] is built from [Params] by [New] and is immutable afterwards.
// Changing any parameter means building a new model:
//
//	m, err := oscillator.New(oscillator.Params{
//	    Amplitude: 100, Stiffness: 150, Damping: 3.5, PhaseOffset: 0.01,
//	    MinAmplitude: oscillator.DefaultMinAmplitude,
//	})
//	if err != nil {
//	    // errors.Is(err, oscillator.ErrInvalidConfiguration)
//	}
//	y := m.Position(0.25)
//
// # Thread Safety
//
// Every method is a pure function of the parameters, so a [Model] may be
// shared freely between goroutines.
package oscillator
