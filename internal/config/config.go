package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/integrators"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

const (
	DefaultInput   = "parameters.txt"
	DefaultOutput  = "output.txt"
	DefaultFormat  = "text"
	DefaultDataDir = "./data"
)

// Config holds everything about a run except the physical constants and
// bodies, which come from the parameters file.
type Config struct {
	Input          string        `yaml:"input" toml:"input"`
	Output         string        `yaml:"output" toml:"output"`
	Format         string        `yaml:"format" toml:"format"` // "text" or "csv"
	Integrator     string        `yaml:"integrator" toml:"integrator"`
	Update         string        `yaml:"update" toml:"update"`
	ZeroSeparation string        `yaml:"zero_separation" toml:"zero_separation"`
	Horizon        string        `yaml:"horizon" toml:"horizon"`
	Metrics        []string      `yaml:"metrics" toml:"metrics"`
	DataDir        string        `yaml:"data_dir" toml:"data_dir"`
	Save           bool          `yaml:"save" toml:"save"`
	Logging        LoggingConfig `yaml:"logging" toml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" or "console"
}

func DefaultConfig() *Config {
	return &Config{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		Format:         DefaultFormat,
		Integrator:     integrators.Default,
		Update:         sim.Sequential.String(),
		ZeroSeparation: physics.ZeroReset.String(),
		Horizon:        sim.BoundExtended.String(),
		DataDir:        DefaultDataDir,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a run configuration on top of the defaults. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg in the format implied by the file extension.
func Save(path string, cfg *Config) error {
	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch c.Format {
	case "text", "csv":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.SimConfig(1, 1, 1); err != nil {
		return err
	}
	return nil
}

// SimConfig combines the run options with the constants from a parameters
// file into a driver configuration.
func (c *Config) SimConfig(g, horizon, dt float64) (sim.Config, error) {
	update, err := sim.ParseUpdateMode(c.Update)
	if err != nil {
		return sim.Config{}, fmt.Errorf("config: %w", err)
	}
	bound, err := sim.ParseHorizonBound(c.Horizon)
	if err != nil {
		return sim.Config{}, fmt.Errorf("config: %w", err)
	}
	zero, err := physics.ParseZeroSeparation(c.ZeroSeparation)
	if err != nil {
		return sim.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := sim.Config{
		G:              g,
		Horizon:        horizon,
		Dt:             dt,
		Update:         update,
		Bound:          bound,
		ZeroSeparation: zero,
	}
	return cfg, cfg.Validate()
}
