package oscillator_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/san-kum/springish/internal/oscillator"
)

var sampleParams = []oscillator.Params{
	oscillator.DefaultParams(),
	{Amplitude: 1, Stiffness: 10, Damping: 0.5, PhaseOffset: 0, MinAmplitude: 0.01},
	{Amplitude: -40, Stiffness: 400, Damping: 12, PhaseOffset: -math.Pi, MinAmplitude: 0.1},
	{Amplitude: 5, Stiffness: 2, Damping: 1.2, PhaseOffset: math.Pi, MinAmplitude: 0.05},
	{Amplitude: 3, Stiffness: 50, Damping: 0, PhaseOffset: 1, MinAmplitude: 0.05},
}

func mustModel(p oscillator.Params) *oscillator.Model {
	m, err := oscillator.New(p)
	Expect(err).NotTo(HaveOccurred())
	return m
}

var _ = Describe("New", func() {
	It("rejects overdamped parameters", func() {
		m, err := oscillator.New(oscillator.Params{Amplitude: 1, Stiffness: 10, Damping: 5, MinAmplitude: 0.05})
		Expect(m).To(BeNil())
		Expect(errors.Is(err, oscillator.ErrInvalidConfiguration)).To(BeTrue())

		var cfgErr *oscillator.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Stiffness).To(Equal(10.0))
		Expect(cfgErr.Damping).To(Equal(5.0))
		Expect(cfgErr.Discriminant).To(Equal(-15.0))
		Expect(err.Error()).To(ContainSubstring("10 - 5^2 = -15"))
	})

	It("rejects critical damping", func() {
		_, err := oscillator.New(oscillator.Params{Amplitude: 1, Stiffness: 4, Damping: 2})
		Expect(err).To(MatchError(oscillator.ErrInvalidConfiguration))
	})

	It("rejects NaN stiffness", func() {
		_, err := oscillator.New(oscillator.Params{Amplitude: 1, Stiffness: math.NaN(), Damping: 1})
		Expect(err).To(MatchError(oscillator.ErrInvalidConfiguration))
	})

	It("stores damping as its absolute value", func() {
		m := mustModel(oscillator.Params{Amplitude: 1, Stiffness: 10, Damping: -2, MinAmplitude: 0.05})
		Expect(m.Damping()).To(Equal(2.0))
		Expect(m.Params().Damping).To(Equal(2.0))
		Expect(m.EnvelopeRate(0)).To(Equal(-2.0))
	})

	It("validates the normalized damping", func() {
		_, err := oscillator.New(oscillator.Params{Amplitude: 1, Stiffness: 10, Damping: -5})
		Expect(err).To(MatchError(oscillator.ErrInvalidConfiguration))
	})

	It("does not validate the threshold", func() {
		m := mustModel(oscillator.Params{Amplitude: 1, Stiffness: 10, Damping: 1, MinAmplitude: -1})
		Expect(m.MinAmplitude()).To(Equal(-1.0))
	})
})

var _ = Describe("Model", func() {
	Context("with the reference parameters", func() {
		var m *oscillator.Model

		BeforeEach(func() {
			m = mustModel(oscillator.DefaultParams())
		})

		It("derives the angular frequency", func() {
			Expect(m.AngularFrequency()).To(BeNumerically("~", math.Sqrt(137.75), 1e-12))
			Expect(m.AngularFrequency()).To(BeNumerically("~", 11.7367, 1e-4))
		})

		It("starts near the full amplitude", func() {
			Expect(m.Position(0)).To(BeNumerically("~", 99.995, 1e-3))
			Expect(m.Envelope(0)).To(Equal(100.0))
		})

		It("decays the envelope exponentially", func() {
			Expect(m.Envelope(1)).To(BeNumerically("~", 100*math.Exp(-3.5), 1e-12))
			Expect(m.EnvelopeRate(1)).To(BeNumerically("~", -3.5*100*math.Exp(-3.5), 1e-12))
		})

		It("reaches the threshold at the settle time", func() {
			ts := m.SettleTime()
			Expect(ts).To(BeNumerically("~", math.Log(100/0.05)/3.5, 1e-12))
			Expect(m.Envelope(ts)).To(BeNumerically("~", 0.05, 1e-12))
		})

		It("agrees between State and the single evaluators", func() {
			for _, t := range []float64{0, 0.1, 0.37, 1.5} {
				pos, vel := m.State(t)
				Expect(pos).To(BeNumerically("~", m.Position(t), 1e-12))
				Expect(vel).To(BeNumerically("~", m.Velocity(t), 1e-9))
			}
		})

		It("relates natural frequency and damping ratio", func() {
			Expect(m.NaturalFrequency()).To(BeNumerically("~", math.Sqrt(150), 1e-12))
			Expect(m.DampingRatio()).To(BeNumerically("~", 3.5/math.Sqrt(150), 1e-12))
			Expect(m.DampingRatio()).To(BeNumerically("<", 1))
		})
	})

	DescribeTable("angular frequency",
		func(p oscillator.Params) {
			m := mustModel(p)
			w := m.AngularFrequency()
			Expect(w).To(BeNumerically(">", 0))
			Expect(w*w + m.Damping()*m.Damping()).To(BeNumerically("~", p.Stiffness, 1e-9*p.Stiffness))
		},
		Entry("reference", sampleParams[0]),
		Entry("light", sampleParams[1]),
		Entry("stiff", sampleParams[2]),
		Entry("soft", sampleParams[3]),
		Entry("undamped", sampleParams[4]),
	)

	DescribeTable("velocity is the derivative of position",
		func(p oscillator.Params) {
			m := mustModel(p)
			scale := math.Abs(p.Amplitude) * (m.AngularFrequency() + m.Damping())
			settings := &fd.Settings{Formula: fd.Central, Step: 1e-5}
			for _, t := range []float64{0, 0.013, 0.2, 0.5, 1, 2.5} {
				numeric := fd.Derivative(m.Position, t, settings)
				Expect(m.Velocity(t)).To(BeNumerically("~", numeric, 1e-6*scale), "t=%v", t)
			}
		},
		Entry("reference", sampleParams[0]),
		Entry("light", sampleParams[1]),
		Entry("stiff", sampleParams[2]),
		Entry("soft", sampleParams[3]),
		Entry("undamped", sampleParams[4]),
	)

	DescribeTable("extremum times are velocity roots",
		func(p oscillator.Params) {
			m := mustModel(p)
			scale := math.Abs(p.Amplitude) * (m.AngularFrequency() + m.Damping())
			checked := 0
			for i := 0; i < 20; i++ {
				tp := m.TimeOfExtremum(i)
				if tp < 0 {
					continue
				}
				checked++
				Expect(m.Velocity(tp)).To(BeNumerically("~", 0, 1e-9*scale), "p=%d t=%v", i, tp)
			}
			Expect(checked).To(BeNumerically(">=", 17))
		},
		Entry("reference", sampleParams[0]),
		Entry("light", sampleParams[1]),
		Entry("stiff", sampleParams[2]),
		Entry("soft", sampleParams[3]),
		Entry("undamped", sampleParams[4]),
	)

	DescribeTable("first extremum index",
		func(p oscillator.Params, want int) {
			m := mustModel(p)
			idx := m.FirstExtremumIndex()
			Expect(idx).To(Equal(want))
			Expect(m.TimeOfExtremum(idx)).To(BeNumerically(">", 0))
			if idx > 0 {
				Expect(m.TimeOfExtremum(idx - 1)).To(BeNumerically("<=", 0))
			}
		},
		Entry("small positive offset", sampleParams[0], 1),
		Entry("zero offset", sampleParams[1], 1),
		Entry("offset -pi", sampleParams[2], 0),
		Entry("offset pi", sampleParams[3], 2),
	)

	It("spaces extrema by half a period", func() {
		m := mustModel(oscillator.DefaultParams())
		half := math.Pi / m.AngularFrequency()
		for i := 0; i < 10; i++ {
			Expect(m.TimeOfExtremum(i+1) - m.TimeOfExtremum(i)).To(BeNumerically("~", half, 1e-12))
		}
	})

	It("never settles without damping", func() {
		m := mustModel(sampleParams[4])
		Expect(math.IsInf(m.SettleTime(), 1)).To(BeTrue())
		Expect(m.Envelope(1000)).To(Equal(3.0))
	})

	It("is settled from the start when the amplitude is below threshold", func() {
		m := mustModel(oscillator.Params{Amplitude: 0.01, Stiffness: 10, Damping: 1, MinAmplitude: 0.05})
		Expect(m.SettleTime()).To(BeZero())
	})
})
