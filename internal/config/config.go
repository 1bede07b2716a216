package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultVariable         = "x"
	DefaultDomainMin        = -10.0
	DefaultDomainMax        = 10.0
	DefaultSamples          = 400
	DefaultPlotWidth        = 72
	DefaultPlotHeight       = 20
	DefaultRenderer         = "ascii"
	DefaultTheme            = "classic"
	DefaultPolicy           = "skip"
	DefaultTolerance        = 1e-9
	DefaultQuadraturePoints = 64
	DefaultLogLevel         = "warn"
)

// ErrInvalid indicates a configuration value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Variable         string       `yaml:"variable"`
	Function         string       `yaml:"function,omitempty"`
	Domain           DomainConfig `yaml:"domain"`
	Samples          int          `yaml:"samples"`
	Plot             PlotConfig   `yaml:"plot"`
	Bounds           BoundsConfig `yaml:"bounds,omitempty"`
	Policy           string       `yaml:"policy"`
	Tolerance        float64      `yaml:"tolerance"`
	QuadraturePoints int          `yaml:"quadrature_points"`
	SVG              string       `yaml:"svg,omitempty"`
	LogLevel         string       `yaml:"log_level"`
}

// DomainConfig is the plotted interval of the variable.
type DomainConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type PlotConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Renderer string `yaml:"renderer"`
	Theme    string `yaml:"theme"`
}

// BoundsConfig holds integration limits as text so fractions such as 1/3
// stay exact.
type BoundsConfig struct {
	Lower string `yaml:"lower,omitempty"`
	Upper string `yaml:"upper,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Variable: DefaultVariable,
		Domain: DomainConfig{
			Min: DefaultDomainMin,
			Max: DefaultDomainMax,
		},
		Samples: DefaultSamples,
		Plot: PlotConfig{
			Width:    DefaultPlotWidth,
			Height:   DefaultPlotHeight,
			Renderer: DefaultRenderer,
			Theme:    DefaultTheme,
		},
		Policy:           DefaultPolicy,
		Tolerance:        DefaultTolerance,
		QuadraturePoints: DefaultQuadraturePoints,
		LogLevel:         DefaultLogLevel,
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
	if err := cfg.Validate(); err != nil {
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

// Validate checks the config and normalizes the case of the policy and
// renderer names.
func (c *Config) Validate() error {
	c.Policy = strings.ToLower(strings.TrimSpace(c.Policy))
	c.Plot.Renderer = strings.ToLower(strings.TrimSpace(c.Plot.Renderer))
	switch {
	case c.Variable == "":
		return fmt.Errorf("%w: variable is empty", ErrInvalid)
	case c.Domain.Min >= c.Domain.Max:
		return fmt.Errorf("%w: domain min %g must be below max %g", ErrInvalid, c.Domain.Min, c.Domain.Max)
	case c.Samples < 2:
		return fmt.Errorf("%w: samples must be at least 2, got %d", ErrInvalid, c.Samples)
	case c.Plot.Width < 10 || c.Plot.Height < 5:
		return fmt.Errorf("%w: plot must be at least 10x5, got %dx%d", ErrInvalid, c.Plot.Width, c.Plot.Height)
	case c.Plot.Renderer != "ascii" && c.Plot.Renderer != "braille":
		return fmt.Errorf("%w: renderer %q (want ascii or braille)", ErrInvalid, c.Plot.Renderer)
	case c.Policy != "skip" && c.Policy != "strict":
		return fmt.Errorf("%w: policy %q (want skip or strict)", ErrInvalid, c.Policy)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance must be positive", ErrInvalid)
	case c.QuadraturePoints < 1:
		return fmt.Errorf("%w: quadrature_points must be positive", ErrInvalid)
	}
	return nil
}

// ApplyPreset copies the function, bounds and domain of a named preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalid, name)
	}
	c.Function = p.Function
	c.Bounds = p.Bounds
	if p.Domain.Min < p.Domain.Max {
		c.Domain = p.Domain
	}
	return nil
}
