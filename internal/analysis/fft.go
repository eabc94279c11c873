package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/springish/internal/oscillator"
)

var ErrTooFewSamples = errors.New("analysis: need at least 4 samples and a positive dt")

// SampleTrajectory evaluates the position at n evenly spaced times from 0.
func SampleTrajectory(m *oscillator.Model, dt float64, n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = m.Position(float64(i) * dt)
	}
	return data
}

// PowerSpectrum returns FFT magnitudes for the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency samples m and returns the strongest non-DC frequency in
// cycles per time unit. Resolution is 1/(n·dt).
func DominantFrequency(m *oscillator.Model, dt float64, n int) (float64, error) {
	if n < 4 || !(dt > 0) {
		return 0, ErrTooFewSamples
	}

	ps := PowerSpectrum(SampleTrajectory(m, dt, n))
	idx := floats.MaxIdx(ps[1:]) + 1
	return float64(idx) / (float64(n) * dt), nil
}
