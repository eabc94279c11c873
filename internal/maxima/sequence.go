package maxima

// Sample is one extremum of the trajectory.
type Sample struct {
	Time         float64
	Displacement float64
}

// Sequence is a time-ordered list of samples starting at t = 0.
type Sequence []Sample

// Keyframe is a sample with time expressed as a fraction of the cycle.
type Keyframe struct {
	Offset       float64
	Displacement float64
}

// Last returns the terminating sample, or the zero Sample if s is empty.
func (s Sequence) Last() Sample {
	if len(s) == 0 {
		return Sample{}
	}
	return s[len(s)-1]
}

// Duration is the time of the terminating sample.
func (s Sequence) Duration() float64 {
	return s.Last().Time
}

// Keyframes maps sample times onto [0, 1] relative to Duration. A sequence
// with zero duration maps every sample to offset 0.
func (s Sequence) Keyframes() []Keyframe {
	total := s.Duration()
	kfs := make([]Keyframe, len(s))
	for i, sm := range s {
		kfs[i].Displacement = sm.Displacement
		if total > 0 {
			kfs[i].Offset = sm.Time / total
		}
	}
	return kfs
}

// Times returns the sample times.
func (s Sequence) Times() []float64 {
	out := make([]float64, len(s))
	for i, sm := range s {
		out[i] = sm.Time
	}
	return out
}

// Displacements returns the sample displacements.
func (s Sequence) Displacements() []float64 {
	out := make([]float64, len(s))
	for i, sm := range s {
		out[i] = sm.Displacement
	}
	return out
}
