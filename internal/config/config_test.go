package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variable != "x" {
		t.Errorf("expected variable x, got %s", cfg.Variable)
	}
	if cfg.Domain.Min != -10 || cfg.Domain.Max != 10 {
		t.Errorf("expected domain [-10, 10], got [%g, %g]", cfg.Domain.Min, cfg.Domain.Max)
	}
	if cfg.Samples != 400 {
		t.Errorf("expected 400 samples, got %d", cfg.Samples)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrema.yaml")
	data := []byte("variable: t\nsamples: 100\nplot:\n  renderer: braille\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Variable != "t" {
		t.Errorf("variable: got %s, want t", cfg.Variable)
	}
	if cfg.Samples != 100 {
		t.Errorf("samples: got %d, want 100", cfg.Samples)
	}
	if cfg.Plot.Renderer != "braille" {
		t.Errorf("renderer: got %s, want braille", cfg.Plot.Renderer)
	}
	if cfg.Plot.Width != DefaultPlotWidth {
		t.Errorf("width should keep default, got %d", cfg.Plot.Width)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extrema.yaml")
	cfg := DefaultConfig()
	cfg.Policy = "strict"
	if err := cfg.ApplyPreset("gaussian"); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Function != cfg.Function || got.Policy != "strict" || got.Domain != cfg.Domain {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty domain", func(c *Config) { c.Domain.Max = c.Domain.Min }},
		{"one sample", func(c *Config) { c.Samples = 1 }},
		{"unknown renderer", func(c *Config) { c.Plot.Renderer = "png" }},
		{"unknown policy", func(c *Config) { c.Policy = "lenient" }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"no variable", func(c *Config) { c.Variable = "" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, want ErrInvalid", tt.name, err)
		}
	}
}

func TestValidateNormalizesNames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = " Strict"
	cfg.Plot.Renderer = "BRAILLE"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Policy != "strict" {
		t.Errorf("policy: got %q, want strict", cfg.Policy)
	}
	if cfg.Plot.Renderer != "braille" {
		t.Errorf("renderer: got %q, want braille", cfg.Plot.Renderer)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("cubic")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.Function != "x**3 - 3*x**2 + 2" {
		t.Errorf("unexpected function %q", p.Function)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestApplyPresetKeepsDefaultDomain(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset("cubic"); err != nil {
		t.Fatal(err)
	}
	if cfg.Domain.Min != DefaultDomainMin || cfg.Domain.Max != DefaultDomainMax {
		t.Errorf("domain changed to [%g, %g]", cfg.Domain.Min, cfg.Domain.Max)
	}
	if cfg.Bounds.Upper != "3" {
		t.Errorf("upper bound: got %q, want 3", cfg.Bounds.Upper)
	}

	if err := cfg.ApplyPreset("nope"); !errors.Is(err, ErrInvalid) {
		t.Errorf("got %v, want ErrInvalid", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
