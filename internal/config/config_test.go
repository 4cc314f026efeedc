package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Output != "output.txt" || cfg.Format != "text" {
		t.Errorf("unexpected output defaults %s/%s", cfg.Output, cfg.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	sc, err := cfg.SimConfig(1, 2, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Update != sim.Sequential || sc.Bound != sim.BoundExtended || sc.ZeroSeparation != physics.ZeroReset {
		t.Errorf("expected literal defaults, got %+v", sc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *Config)
	}{
		{"format", func(c *Config) { c.Format = "xml" }},
		{"integrator", func(c *Config) { c.Integrator = "rk45" }},
		{"update", func(c *Config) { c.Update = "parallel" }},
		{"horizon", func(c *Config) { c.Horizon = "forever" }},
		{"zero separation", func(c *Config) { c.ZeroSeparation = "soften" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSimConfigRejectsConstants(t *testing.T) {
	if _, err := DefaultConfig().SimConfig(1, 0, 0.1); !errors.Is(err, dynamo.ErrNonPositiveConstant) {
		t.Errorf("expected ErrNonPositiveConstant, got %v", err)
	}
}

func TestLoadYAMLAndTOML(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "run.yaml")
	os.WriteFile(yamlPath, []byte("update: synchronized\nformat: csv\nlogging:\n  level: debug\n"), 0644)

	tomlPath := filepath.Join(dir, "run.toml")
	os.WriteFile(tomlPath, []byte("horizon = \"exact\"\nzero_separation = \"skip\"\n\n[logging]\nformat = \"json\"\n"), 0644)

	cfg, err := Load(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Update != "synchronized" || cfg.Format != "csv" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected yaml config %+v", cfg)
	}
	if cfg.Integrator != "rk4" {
		t.Error("defaults should survive a partial file")
	}

	cfg, err = Load(tomlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Horizon != "exact" || cfg.ZeroSeparation != "skip" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected toml config %+v", cfg)
	}
	if cfg.Logging.Level != "info" {
		t.Error("defaults should survive a partial file")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"run.yaml", "run.toml"} {
		cfg := DefaultConfig()
		cfg.Metrics = []string{"energy_drift"}
		cfg.Save = true

		path := filepath.Join(dir, name)
		if err := Save(path, cfg); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !got.Save || len(got.Metrics) != 1 || got.Metrics[0] != "energy_drift" {
			t.Errorf("%s: round trip lost fields: %+v", name, got)
		}
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("figure8")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(p.Bodies) != 3 {
		t.Errorf("expected 3 bodies, got %d", len(p.Bodies))
	}

	// the figure eight starts with zero total momentum
	m := physics.Momentum(p.Bodies)
	if m.X*m.X+m.Y*m.Y > 1e-16 {
		t.Errorf("expected zero momentum, got %v", m)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		p := GetPreset(name)
		if _, _, dup := physics.DuplicatePositions(p.Bodies); dup {
			t.Errorf("preset %s has duplicate positions", name)
		}
		var buf bytes.Buffer
		if err := WriteParameters(&buf, p); err != nil {
			t.Fatal(err)
		}
		if _, err := ParseParameters(strings.NewReader(buf.String()), name); err != nil {
			t.Errorf("preset %s does not parse back: %v", name, err)
		}
	}
}
