// Package config loads and saves solve configurations and ships a small
// preset catalog keyed by function name.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/bisect/internal/solver"
)

const (
	DefaultFunction = "quadratic"
	DefaultLeft     = 1.0
	DefaultRight    = 2.0
)

type Config struct {
	Function      string  `yaml:"function"`
	Left          float64 `yaml:"left"`
	Right         float64 `yaml:"right"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	MinInterval   float64 `yaml:"min_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Function:      DefaultFunction,
		Left:          DefaultLeft,
		Right:         DefaultRight,
		Tolerance:     solver.DefaultTolerance,
		MaxIterations: solver.DefaultMaxIterations,
		MinInterval:   solver.DefaultMinInterval,
	}
}

// Load reads a yaml config at path; missing keys keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, *DefaultConfig())
}

// LoadOver reads a yaml config at path on top of base; keys the file omits
// keep the base values rather than reverting to package defaults.
func LoadOver(path string, base Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Solver returns the solver-facing slice of the config.
func (c *Config) Solver() solver.Config {
	return solver.Config{
		Tolerance:     c.Tolerance,
		MaxIterations: c.MaxIterations,
		MinInterval:   c.MinInterval,
	}
}
