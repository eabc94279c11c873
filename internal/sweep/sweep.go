// Package sweep runs maxima extraction over many parameter sets in parallel.
package sweep

import (
	"context"
	"sync"

	"github.com/san-kum/springish/internal/maxima"
	"github.com/san-kum/springish/internal/oscillator"
)

// Result is the outcome for one parameter set. Err holds construction or
// extraction failures; other fields are zero when it is set.
type Result struct {
	Params     oscillator.Params
	Samples    int
	Duration   float64
	FirstIndex int
	Stats      maxima.Stats
	Err        error
}

// Runner extracts maxima for many parameter sets on a fixed number of
// goroutines.
type Runner struct {
	extractor *maxima.Extractor
	workers   int
}

// New returns a Runner. A nil extractor uses maxima.New(); workers below 1
// run serially.
func New(extractor *maxima.Extractor, workers int) *Runner {
	if extractor == nil {
		extractor = maxima.New()
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{extractor: extractor, workers: workers}
}

// Run evaluates every parameter set. Results keep the input order. Only
// context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, params []oscillator.Params) ([]Result, error) {
	n := len(params)
	results := make([]Result, n)

	workers := r.workers
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return results, ctx.Err()
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				if ctx.Err() != nil {
					return
				}
				results[i] = r.evaluate(params[i])
			}
		}(start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) evaluate(p oscillator.Params) Result {
	res := Result{Params: p}

	m, err := oscillator.New(p)
	if err != nil {
		res.Err = err
		return res
	}

	seq, st, err := r.extractor.ExtractWithStats(m)
	if err != nil {
		res.Err = err
		return res
	}

	res.Samples = len(seq)
	res.Duration = seq.Duration()
	res.FirstIndex = m.FirstExtremumIndex()
	res.Stats = st
	return res
}

// PhaseOffsets returns steps copies of base with phase offsets spread evenly
// over [lo, hi], both ends included.
func PhaseOffsets(base oscillator.Params, lo, hi float64, steps int) []oscillator.Params {
	if steps < 1 {
		return nil
	}
	out := make([]oscillator.Params, steps)
	for i := range out {
		p := base
		if steps == 1 {
			p.PhaseOffset = lo
		} else {
			p.PhaseOffset = lo + (hi-lo)*float64(i)/float64(steps-1)
		}
		out[i] = p
	}
	return out
}

// Summary aggregates a sweep. Sample bounds cover successful runs only.
type Summary struct {
	Count      int
	Failed     int
	MaxSkipped int
	MinSamples int
	MaxSamples int
}

// Summarize folds results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Count: len(results)}
	first := true
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		s.MaxSkipped = max(s.MaxSkipped, r.Stats.Skipped)
		if first {
			s.MinSamples, s.MaxSamples = r.Samples, r.Samples
			first = false
			continue
		}
		s.MinSamples = min(s.MinSamples, r.Samples)
		s.MaxSamples = max(s.MaxSamples, r.Samples)
	}
	return s
}
