package physics

import (
	"errors"
	"fmt"
)

// Domain errors for body configuration and collision resolution.
var (
	// ErrInvalidConfiguration indicates a body or scene with a non-positive
	// mass or width, or an otherwise impossible layout.
	ErrInvalidConfiguration = errors.New("physics: invalid configuration")

	// ErrDivisionHazard indicates a body-body resolution with zero total mass.
	// It can only be reached when the mass invariant was bypassed upstream.
	ErrDivisionHazard = errors.New("physics: division hazard (zero total mass)")
)

// ConfigError records which field was rejected and with what value.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("physics: invalid configuration: %s=%g %s", e.Field, e.Value, reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

func requirePositive(field string, v float64) error {
	// NaN fails this comparison too.
	if !(v > 0) {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}
