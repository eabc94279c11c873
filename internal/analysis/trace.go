package analysis

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/springish/internal/oscillator"
)

// TracePoint pairs a stepped spring position with the closed-form one.
type TracePoint struct {
	Time     float64
	Stepped  float64
	Analytic float64
}

// Trace steps a harmonica spring with the model's natural frequency and
// damping ratio, starting from the model state at t = 0, for the given
// number of frames.
func Trace(m *oscillator.Model, fps, frames int) []TracePoint {
	dt := harmonica.FPS(fps)
	spring := harmonica.NewSpring(dt, m.NaturalFrequency(), m.DampingRatio())

	pos, vel := m.State(0)
	out := make([]TracePoint, 0, frames+1)
	out = append(out, TracePoint{Time: 0, Stepped: pos, Analytic: pos})

	for i := 1; i <= frames; i++ {
		pos, vel = spring.Update(pos, vel, 0)
		t := float64(i) * dt
		out = append(out, TracePoint{Time: t, Stepped: pos, Analytic: m.Position(t)})
	}
	return out
}

// MaxTraceError returns the largest |stepped - analytic| over the trace.
func MaxTraceError(points []TracePoint) float64 {
	worst := 0.0
	for _, p := range points {
		worst = math.Max(worst, math.Abs(p.Stepped-p.Analytic))
	}
	return worst
}
