package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/springish/internal/maxima"
	"github.com/san-kum/springish/internal/oscillator"
)

const (
	DefaultSweepSteps = 64
	DefaultWorkers    = 4
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

type Config struct {
	Oscillator oscillator.Params `yaml:"oscillator"`
	Extraction ExtractionConfig  `yaml:"extraction"`
	Sweep      SweepConfig       `yaml:"sweep"`
	Log        LogConfig         `yaml:"log"`
}

// ExtractionConfig tunes maxima extraction. A zero MaxIterations derives the
// cap from the oscillator's settle time.
type ExtractionConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// SweepConfig describes a phase offset sweep over [OffsetMin, OffsetMax].
type SweepConfig struct {
	OffsetMin float64 `yaml:"offset_min"`
	OffsetMax float64 `yaml:"offset_max"`
	Steps     int     `yaml:"steps"`
	Workers   int     `yaml:"workers"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Oscillator: oscillator.DefaultParams(),
		Sweep: SweepConfig{
			OffsetMin: -math.Pi,
			OffsetMax: math.Pi,
			Steps:     DefaultSweepSteps,
			Workers:   DefaultWorkers,
		},
		Log: LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Load reads a yaml file on top of DefaultConfig, so omitted keys keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Merge(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the keys present in a yaml file onto cfg.
func Merge(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Model builds a fresh oscillator from the current parameters. Any edit to
// Oscillator requires calling Model again.
func (c *Config) Model() (*oscillator.Model, error) {
	return oscillator.New(c.Oscillator)
}

func (c *Config) Extractor() *maxima.Extractor {
	return maxima.New(maxima.WithMaxIterations(c.Extraction.MaxIterations))
}

// ApplyPreset replaces the oscillator parameters with the named preset.
func (c *Config) ApplyPreset(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Oscillator = p
	return nil
}
