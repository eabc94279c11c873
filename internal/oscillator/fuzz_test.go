package oscillator_test

import (
	"math"
	"testing"

	"github.com/san-kum/springish/internal/oscillator"
)

// FuzzFirstExtremumIndex checks that phase offsets in [-pi, pi] never push
// the first usable extremum past p = 2.
func FuzzFirstExtremumIndex(f *testing.F) {
	f.Add(150.0, 3.5, 0.01)
	f.Add(10.0, 0.5, math.Pi)
	f.Add(2.0, 1.4, math.Pi)
	f.Add(400.0, 12.0, -math.Pi)
	f.Add(1.0, 0.0, 0.0)

	f.Fuzz(func(t *testing.T, stiffness, damping, phase float64) {
		if math.IsNaN(phase) || math.IsInf(phase, 0) {
			t.Skip()
		}
		phase = math.Max(-math.Pi, math.Min(math.Pi, phase))

		m, err := oscillator.New(oscillator.Params{
			Amplitude:    1,
			Stiffness:    stiffness,
			Damping:      damping,
			PhaseOffset:  phase,
			MinAmplitude: oscillator.DefaultMinAmplitude,
		})
		if err != nil || math.IsInf(m.AngularFrequency(), 0) {
			t.Skip()
		}

		idx := m.FirstExtremumIndex()
		if idx > 2 {
			t.Fatalf("phase %v: first extremum index %d, want <= 2", phase, idx)
		}
		if tp := m.TimeOfExtremum(idx); !(tp > 0) {
			t.Fatalf("phase %v: t(%d) = %v, want > 0", phase, idx, tp)
		}
		if idx > 0 {
			if tp := m.TimeOfExtremum(idx - 1); tp > 0 {
				t.Fatalf("phase %v: t(%d) = %v, want <= 0", phase, idx-1, tp)
			}
		}
	})
}

func TestFirstExtremumIndexLargeOffset(t *testing.T) {
	m, err := oscillator.New(oscillator.Params{Amplitude: 1, Stiffness: 10, Damping: 1, PhaseOffset: 100})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	idx := m.FirstExtremumIndex()
	if idx != 32 {
		t.Errorf("expected index 32, got %d", idx)
	}
	if m.TimeOfExtremum(idx) <= 0 || m.TimeOfExtremum(idx-1) > 0 {
		t.Errorf("index %d does not bracket t = 0", idx)
	}
}
