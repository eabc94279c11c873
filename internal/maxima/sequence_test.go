package maxima

import (
	"math"
	"testing"
)

func TestSequenceKeyframes(t *testing.T) {
	seq := Sequence{{0, 10}, {0.5, -4}, {1.0, 1.5}, {2.0, 0.01}}

	if seq.Duration() != 2.0 {
		t.Errorf("expected duration 2, got %v", seq.Duration())
	}

	kfs := seq.Keyframes()
	want := []float64{0, 0.25, 0.5, 1}
	for i, kf := range kfs {
		if math.Abs(kf.Offset-want[i]) > 1e-12 {
			t.Errorf("keyframe %d: offset %v, want %v", i, kf.Offset, want[i])
		}
		if kf.Displacement != seq[i].Displacement {
			t.Errorf("keyframe %d: displacement %v, want %v", i, kf.Displacement, seq[i].Displacement)
		}
	}
}

func TestSequenceSingleSample(t *testing.T) {
	seq := Sequence{{0, 0.02}}

	kfs := seq.Keyframes()
	if len(kfs) != 1 || kfs[0].Offset != 0 {
		t.Errorf("expected a single keyframe at offset 0, got %v", kfs)
	}
}

func TestSequenceEmpty(t *testing.T) {
	var seq Sequence
	if seq.Last() != (Sample{}) {
		t.Error("expected zero sample")
	}
	if len(seq.Keyframes()) != 0 {
		t.Error("expected no keyframes")
	}
}

func TestSequenceColumns(t *testing.T) {
	seq := Sequence{{0, 3}, {1, -2}}

	times, ys := seq.Times(), seq.Displacements()
	if times[1] != 1 || ys[1] != -2 {
		t.Errorf("unexpected columns %v %v", times, ys)
	}
}
