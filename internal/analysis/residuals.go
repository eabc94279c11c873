package analysis

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/springish/internal/maxima"
	"github.com/san-kum/springish/internal/oscillator"
)

// DefaultStep is the central-difference step used by Residuals.
const DefaultStep = 1e-6

// Residual compares the velocity at an extremum to zero, analytically and
// by finite differences.
type Residual struct {
	Time     float64
	Analytic float64
	Numeric  float64
}

// Residuals checks every sample after the start, which is not an extremum
// in general.
func Residuals(m *oscillator.Model, seq maxima.Sequence) []Residual {
	if len(seq) < 2 {
		return nil
	}

	settings := &fd.Settings{Formula: fd.Central, Step: DefaultStep}
	out := make([]Residual, 0, len(seq)-1)
	for _, s := range seq[1:] {
		out = append(out, Residual{
			Time:     s.Time,
			Analytic: m.Velocity(s.Time),
			Numeric:  fd.Derivative(m.Position, s.Time, settings),
		})
	}
	return out
}

// MaxResidual returns the largest finite-difference velocity magnitude.
func MaxResidual(rs []Residual) float64 {
	if len(rs) == 0 {
		return 0
	}
	abs := make([]float64, len(rs))
	for i, r := range rs {
		abs[i] = math.Abs(r.Numeric)
	}
	return floats.Max(abs)
}
