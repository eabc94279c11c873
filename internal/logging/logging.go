// Package logging builds the zap loggers used by the command line tools.
// Library packages never log; they return errors.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/springish/internal/maxima"
	"github.com/san-kum/springish/internal/oscillator"
)

// New returns a logger writing to stderr. Format is "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	return NewWithWriter(level, format, zapcore.Lock(os.Stderr))
}

func NewWithWriter(level, format string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	core := zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(lvl))
	return zap.New(core, zap.AddCaller()), nil
}

// Params logs oscillator parameters as a nested object.
func Params(p oscillator.Params) zap.Field {
	return zap.Object("params", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddFloat64("amplitude", p.Amplitude)
		enc.AddFloat64("stiffness", p.Stiffness)
		enc.AddFloat64("damping", p.Damping)
		enc.AddFloat64("phase_offset", p.PhaseOffset)
		enc.AddFloat64("min_amplitude", p.MinAmplitude)
		return nil
	}))
}

// Stats logs extraction counters.
func Stats(st maxima.Stats) zap.Field {
	return zap.Object("stats", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddInt("iterations", st.Iterations)
		enc.AddInt("skipped", st.Skipped)
		return nil
	}))
}
