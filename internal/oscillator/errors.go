package oscillator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration indicates parameters outside the underdamped regime.
var ErrInvalidConfiguration = errors.New("oscillator: invalid configuration")

// ConfigError carries the values that failed the underdamping check.
type ConfigError struct {
	Stiffness    float64
	Damping      float64
	Discriminant float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: only underdamped oscillations are supported, need stiffness - damping^2 > 0, got %g - %g^2 = %g",
		ErrInvalidConfiguration, e.Stiffness, e.Damping, e.Discriminant)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
