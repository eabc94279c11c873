// Package maxima extracts the extremum samples of an oscillator trajectory.
//
// Starting from (0, y(0)), the [Extractor] walks the closed-form extremum
// times of an [oscillator.Model] for p = 0, 1, 2, ... and collects
// (time, displacement) pairs until the latest displacement is within the
// model's settle threshold. The resulting [Sequence] is the only artifact
// handed to presentation code:
//
//	seq, err := maxima.Extract(model)
//	if errors.Is(err, maxima.ErrDivergentSeries) {
//	    // undamped, or the threshold is never reached
//	}
//	for _, kf := range seq.Keyframes() {
//	    // kf.Offset in [0, 1], kf.Displacement
//	}
//
// Extraction is a single forward pass with no hidden state; calling it
// twice on the same model yields identical sequences.
package maxima
