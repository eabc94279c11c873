package config

import (
	"sort"

	"github.com/san-kum/springish/internal/oscillator"
)

var Presets = map[string]oscillator.Params{
	"default": oscillator.DefaultParams(),
	"soft": {
		Amplitude: 60, Stiffness: 40, Damping: 1.5, PhaseOffset: 0,
		MinAmplitude: oscillator.DefaultMinAmplitude,
	},
	"snappy": {
		Amplitude: 100, Stiffness: 600, Damping: 9, PhaseOffset: 0,
		MinAmplitude: oscillator.DefaultMinAmplitude,
	},
	"wobbly": {
		Amplitude: 30, Stiffness: 90, Damping: 0.8, PhaseOffset: 0.3,
		MinAmplitude: oscillator.DefaultMinAmplitude,
	},
}

func GetPreset(name string) (oscillator.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
