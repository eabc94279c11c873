package maxima

import (
	"iter"
	"math"

	"github.com/san-kum/springish/internal/oscillator"
)

const (
	// DefaultMaxIterations bounds the extremum index search when the model
	// gives no finite settle time. Skipped indices count.
	DefaultMaxIterations = 1 << 20

	// limitMargin absorbs rounding in the derived iteration limit.
	limitMargin = 8
)

// Stats describes a finished extraction.
type Stats struct {
	// Iterations is the number of extremum indices evaluated.
	Iterations int
	// Skipped counts indices whose extremum time was not positive.
	Skipped int
}

// Extractor walks extremum indices of a model and collects samples until the
// motion settles. The zero cap derives the limit from each model.
type Extractor struct {
	maxIterations int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxIterations fixes the extremum search cap. Non-positive values keep
// the derived limit.
func WithMaxIterations(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// New returns an Extractor whose cap is derived from each model unless
// WithMaxIterations fixes it.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxIterations returns the fixed cap, or 0 when the cap is derived.
func (e *Extractor) MaxIterations() int { return e.maxIterations }

// Limit returns the number of extremum indices the extractor evaluates for m
// before reporting divergence. A derived limit covers every index up to the
// analytic settle time and is never below DefaultMaxIterations.
func (e *Extractor) Limit(m *oscillator.Model) int {
	if e.maxIterations > 0 {
		return e.maxIterations
	}

	settle := m.SettleTime()
	if math.IsInf(settle, 1) || math.IsNaN(settle) {
		return DefaultMaxIterations
	}

	// Consecutive extrema are pi/omega apart, so the index whose time passes
	// the settle time is at most this far beyond the first positive one.
	n := float64(m.FirstExtremumIndex()) + math.Ceil(settle*m.AngularFrequency()/math.Pi) + limitMargin
	if n >= maxLimit {
		return maxLimit
	}
	return max(int(n), DefaultMaxIterations)
}

// Extract runs a default extractor over m.
func Extract(m *oscillator.Model) (Sequence, error) {
	return New().Extract(m)
}

// Extract returns the full sample sequence for m. On error no partial
// sequence is returned.
func (e *Extractor) Extract(m *oscillator.Model) (Sequence, error) {
	seq, _, err := e.ExtractWithStats(m)
	return seq, err
}

// ExtractWithStats is Extract plus the index walk counters.
func (e *Extractor) ExtractWithStats(m *oscillator.Model) (Sequence, Stats, error) {
	var seq Sequence
	st, err := e.walk(m, func(s Sample) bool {
		seq = append(seq, s)
		return true
	})
	if err != nil {
		return nil, st, err
	}
	return seq, st, nil
}

// Samples yields the sequence lazily. On divergence the final pair carries
// the error and a zero Sample.
func (e *Extractor) Samples(m *oscillator.Model) iter.Seq2[Sample, error] {
	return func(yield func(Sample, error) bool) {
		stopped := false
		_, err := e.walk(m, func(s Sample) bool {
			if !yield(s, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(Sample{}, err)
		}
	}
}

func (e *Extractor) walk(m *oscillator.Model, yield func(Sample) bool) (Stats, error) {
	var st Stats
	minY := m.MinAmplitude()

	last := Sample{Time: 0, Displacement: m.Position(0)}
	if !yield(last) || settled(last, minY) {
		return st, nil
	}

	// Every extremum of an undamped cosine has |y| = |A|.
	if m.Damping() == 0 && math.Abs(m.Params().Amplitude) > minY {
		return st, &DivergenceError{Undamped: true, Last: last, Threshold: minY}
	}

	limit := e.Limit(m)
	for p := 0; p < limit; p++ {
		st.Iterations++

		t := m.TimeOfExtremum(p)
		// Roots at or before t = 0 precede the motion; t = 0 is already sampled.
		if !(t > 0) {
			st.Skipped++
			continue
		}

		last = Sample{Time: t, Displacement: m.Position(t)}
		if !yield(last) || settled(last, minY) {
			return st, nil
		}
	}

	return st, &DivergenceError{Iterations: st.Iterations, Last: last, Threshold: minY}
}

const maxLimit = math.MaxInt32

func settled(s Sample, minY float64) bool {
	return math.Abs(s.Displacement) <= minY
}
