package maxima

import (
	"errors"
	"fmt"
)

// ErrDivergentSeries indicates the envelope never decays to the threshold.
var ErrDivergentSeries = errors.New("maxima: divergent series")

// DivergenceError wraps ErrDivergentSeries with extraction context.
type DivergenceError struct {
	Undamped   bool
	Iterations int
	Last       Sample
	Threshold  float64
}

func (e *DivergenceError) Error() string {
	if e.Undamped {
		return fmt.Sprintf("%s: undamped envelope stays above threshold %g", ErrDivergentSeries, e.Threshold)
	}
	return fmt.Sprintf("%s: no sample within threshold %g after %d iterations (last y(%.4f) = %g)",
		ErrDivergentSeries, e.Threshold, e.Iterations, e.Last.Time, e.Last.Displacement)
}

func (e *DivergenceError) Unwrap() error {
	return ErrDivergentSeries
}
