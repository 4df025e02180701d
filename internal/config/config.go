// Package config loads the command line tool settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gogeom/pkg/intersection"
	"github.com/philipparndt/gogeom/pkg/polyhedron"
)

const configFileName = ".gogeom.yaml"

// Config holds tolerances and logging settings. The geometry packages never
// read it; commands pass the values on explicitly.
type Config struct {
	Tolerance      float64       `yaml:"tolerance"`
	SolidTolerance float64       `yaml:"solid_tolerance"`
	SpikeOffset    float64       `yaml:"spike_offset"`
	LogLevel       string        `yaml:"log_level"`
	WatchDebounce  time.Duration `yaml:"watch_debounce"`
}

// Default returns the settings used when there is no config file
func Default() *Config {
	return &Config{
		Tolerance:      0.01,
		SolidTolerance: polyhedron.DefaultTolerance,
		SpikeOffset:    intersection.DefaultSpikeOffset,
		LogLevel:       "info",
		WatchDebounce:  300 * time.Millisecond,
	}
}

// DefaultPath is ~/.gogeom.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, configFileName), nil
}

// Load reads the config file at path. An empty path means DefaultPath, which
// may be missing; an explicitly named file must exist. Unset keys keep their defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that all tolerances are positive and the log level is known
func (c *Config) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("'tolerance' must be positive, got %g", c.Tolerance)
	}
	if c.SolidTolerance <= 0 {
		return fmt.Errorf("'solid_tolerance' must be positive, got %g", c.SolidTolerance)
	}
	if c.SpikeOffset <= 0 {
		return fmt.Errorf("'spike_offset' must be positive, got %g", c.SpikeOffset)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("'watch_debounce' must not be negative, got %s", c.WatchDebounce)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("'log_level': %w", err)
	}
	return level, nil
}
