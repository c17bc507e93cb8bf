package config

import (
	"fmt"
	"os"

	"github.com/san-kum/blockpi/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMassA     = 10.0
	DefaultMassB     = 100.0
	DefaultWidth     = 50.0
	DefaultVelocityA = 0.0
	DefaultVelocityB = 2.0
	DefaultPositionA = 500.0
	DefaultPositionB = 100.0
	DefaultWall      = 750.0
	DefaultSpeed     = 1.0
	DefaultSpeedMin  = 0.1
	DefaultSpeedMax  = 5.0
	DefaultMaxTicks  = 1_000_000
	DefaultFPS       = 60
)

// Config describes the initial scene. Block A sits next to the wall, block B
// to its left.
type Config struct {
	MassA     float64 `yaml:"mass_a"`
	MassB     float64 `yaml:"mass_b"`
	WidthA    float64 `yaml:"width_a"`
	WidthB    float64 `yaml:"width_b"`
	VelocityA float64 `yaml:"velocity_a"`
	VelocityB float64 `yaml:"velocity_b"`
	PositionA float64 `yaml:"position_a"`
	PositionB float64 `yaml:"position_b"`
	Wall      float64 `yaml:"wall"`
	Speed     float64 `yaml:"speed"`
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	MaxTicks  int     `yaml:"max_ticks"`
	FPS       int     `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		MassA:     DefaultMassA,
		MassB:     DefaultMassB,
		WidthA:    DefaultWidth,
		WidthB:    DefaultWidth,
		VelocityA: DefaultVelocityA,
		VelocityB: DefaultVelocityB,
		PositionA: DefaultPositionA,
		PositionB: DefaultPositionB,
		Wall:      DefaultWall,
		Speed:     DefaultSpeed,
		SpeedMin:  DefaultSpeedMin,
		SpeedMax:  DefaultSpeedMax,
		MaxTicks:  DefaultMaxTicks,
		FPS:       DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulation cannot start from. Every
// failure wraps physics.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"mass_a", c.MassA},
		{"mass_b", c.MassB},
		{"width_a", c.WidthA},
		{"width_b", c.WidthB},
		{"speed", c.Speed},
		{"speed_min", c.SpeedMin},
		{"max_ticks", float64(c.MaxTicks)},
		{"fps", float64(c.FPS)},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return &physics.ConfigError{Field: p.field, Value: p.value}
		}
	}
	if c.SpeedMax < c.SpeedMin {
		return &physics.ConfigError{Field: "speed_max", Value: c.SpeedMax, Reason: "must not be below speed_min"}
	}
	if c.PositionB+c.WidthB > c.PositionA {
		return &physics.ConfigError{Field: "position_b", Value: c.PositionB, Reason: "overlaps block A"}
	}
	if c.PositionA+c.WidthA > c.Wall {
		return &physics.ConfigError{Field: "position_a", Value: c.PositionA, Reason: "overlaps the wall"}
	}
	return nil
}

// WithMasses returns a copy of c with the two masses replaced.
func (c *Config) WithMasses(massA, massB float64) *Config {
	cp := *c
	cp.MassA = massA
	cp.MassB = massB
	return &cp
}
