package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odelab/internal/experiment"
)

const (
	DefaultTol     = 1e-6
	DefaultEnd     = 10.0
	DefaultSamples = 201
)

type Config struct {
	System      string             `yaml:"system"`
	Method      string             `yaml:"method"`
	Tol         float64            `yaml:"tol"`
	Start       float64            `yaml:"start"`
	End         float64            `yaml:"end"`
	Samples     int                `yaml:"samples"`
	Y0          []float64          `yaml:"y0,omitempty"`
	InitialStep float64            `yaml:"initial_step,omitempty"`
	MaxReject   int                `yaml:"max_reject,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System:  "oscillator",
		Method:  "dopri5",
		Tol:     DefaultTol,
		Start:   0,
		End:     DefaultEnd,
		Samples: DefaultSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Experiment converts the file form into the runner's config.
func (c *Config) Experiment() experiment.Config {
	return experiment.Config{
		System:      c.System,
		Method:      c.Method,
		Tol:         c.Tol,
		Start:       c.Start,
		End:         c.End,
		Samples:     c.Samples,
		Y0:          c.Y0,
		InitialStep: c.InitialStep,
		MaxReject:   c.MaxReject,
		Params:      c.Params,
	}
}
