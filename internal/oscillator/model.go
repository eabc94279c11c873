package oscillator

import "math"

const (
	// DefaultMinAmplitude is the envelope magnitude below which motion counts as settled.
	DefaultMinAmplitude = 0.05

	DefaultAmplitude   = 100.0
	DefaultStiffness   = 150.0
	DefaultDamping     = 3.5
	DefaultPhaseOffset = 0.01
)

// Params are the physical parameters of a damped cosine motion.
type Params struct {
	Amplitude    float64 `yaml:"amplitude"`
	Stiffness    float64 `yaml:"stiffness"`
	Damping      float64 `yaml:"damping"`
	PhaseOffset  float64 `yaml:"phase_offset"`
	MinAmplitude float64 `yaml:"min_amplitude"`
}

// DefaultParams returns the reference bouncy-spring configuration.
func DefaultParams() Params {
	return Params{
		Amplitude:    DefaultAmplitude,
		Stiffness:    DefaultStiffness,
		Damping:      DefaultDamping,
		PhaseOffset:  DefaultPhaseOffset,
		MinAmplitude: DefaultMinAmplitude,
	}
}

// Discriminant returns stiffness - damping², the squared angular frequency.
func (p Params) Discriminant() float64 {
	return p.Stiffness - p.Damping*p.Damping
}

// Model evaluates an underdamped damped cosine. It is immutable and safe for
// concurrent use.
type Model struct {
	params Params
	omega  float64
}

// New validates p and builds an immutable model. The damping sign is dropped.
func New(p Params) (*Model, error) {
	p.Damping = math.Abs(p.Damping)

	disc := p.Discriminant()
	// NaN fails this comparison too.
	if !(disc > 0) {
		return nil, &ConfigError{
			Stiffness:    p.Stiffness,
			Damping:      p.Damping,
			Discriminant: disc,
		}
	}

	return &Model{params: p, omega: math.Sqrt(disc)}, nil
}

// Params returns the normalized parameters the model was built from.
func (m *Model) Params() Params { return m.params }

func (m *Model) Damping() float64      { return m.params.Damping }
func (m *Model) MinAmplitude() float64 { return m.params.MinAmplitude }

// AngularFrequency returns ω = sqrt(k − c²).
func (m *Model) AngularFrequency() float64 { return m.omega }

// NaturalFrequency returns the undamped angular frequency sqrt(k).
func (m *Model) NaturalFrequency() float64 { return math.Sqrt(m.params.Stiffness) }

// DampingRatio returns c / sqrt(k); always below 1 for a valid model.
func (m *Model) DampingRatio() float64 {
	return m.params.Damping / m.NaturalFrequency()
}

// Envelope is the decaying amplitude bound A·e^(−c·t).
func (m *Model) Envelope(t float64) float64 {
	return m.params.Amplitude * math.Exp(-m.params.Damping*t)
}

// EnvelopeRate is dEnvelope/dt.
func (m *Model) EnvelopeRate(t float64) float64 {
	return -m.params.Damping * m.Envelope(t)
}

// Position returns the displacement at time t.
func (m *Model) Position(t float64) float64 {
	return m.Envelope(t) * math.Cos(m.phase(t))
}

// Velocity returns dPosition/dt at time t.
func (m *Model) Velocity(t float64) float64 {
	sin, cos := math.Sincos(m.phase(t))
	return m.EnvelopeRate(t)*cos - m.omega*m.Envelope(t)*sin
}

// State returns position and velocity at time t in one pass.
func (m *Model) State(t float64) (pos, vel float64) {
	env := m.Envelope(t)
	sin, cos := math.Sincos(m.phase(t))
	pos = env * cos
	vel = -m.params.Damping*env*cos - m.omega*env*sin
	return pos, vel
}

// TimeOfExtremum returns the p-th root of Velocity(t) = 0. Small p may give
// negative times when the phase offset is large; those precede the motion.
func (m *Model) TimeOfExtremum(p int) float64 {
	return (math.Atan(-m.params.Damping/m.omega) + float64(p)*math.Pi - m.params.PhaseOffset) / m.omega
}

// FirstExtremumIndex returns the smallest p >= 0 whose extremum time is
// strictly positive.
func (m *Model) FirstExtremumIndex() int {
	x := (m.params.PhaseOffset + math.Atan(m.params.Damping/m.omega)) / math.Pi
	if x >= maxIndex {
		return int(maxIndex)
	}

	p := 0
	if x >= 0 {
		p = int(math.Floor(x)) + 1
	}
	// Correct for rounding at branch boundaries.
	for m.TimeOfExtremum(p) <= 0 {
		p++
	}
	for p > 0 && m.TimeOfExtremum(p-1) > 0 {
		p--
	}
	return p
}

// SettleTime returns the time at which the envelope falls to the settle
// threshold. It is +Inf when the envelope never gets there analytically.
func (m *Model) SettleTime() float64 {
	a := math.Abs(m.params.Amplitude)
	minY := m.params.MinAmplitude
	if a <= minY {
		return 0
	}
	if m.params.Damping == 0 || minY <= 0 {
		return math.Inf(1)
	}
	return math.Log(a/minY) / m.params.Damping
}

func (m *Model) phase(t float64) float64 {
	return m.omega*t + m.params.PhaseOffset
}

const maxIndex = 1 << 53
