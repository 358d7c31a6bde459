// Package config loads the optional corpusprep.yaml settings file.
// Everything in it has a flag equivalent; the file just saves retyping the
// same corpus paths and thresholds across recipe runs. Flags win over file
// values, file values win over defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "corpusprep.yaml"

// Config holds tool-wide defaults.
type Config struct {
	Overlap OverlapConfig `yaml:"overlap"`
	Stats   StatsConfig   `yaml:"stats"`
}

// OverlapConfig holds defaults for the overlap analysis.
type OverlapConfig struct {
	MinConcurrent int    `yaml:"min_concurrent"`
	Workers       int    `yaml:"workers"`
	Database      string `yaml:"database"`
}

// StatsConfig holds defaults for the dataset statistics report.
type StatsConfig struct {
	TrainDir string `yaml:"train_dir"`
	EvalDir  string `yaml:"eval_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Overlap: OverlapConfig{
			MinConcurrent: 2,
			Workers:       1,
		},
		Stats: StatsConfig{
			TrainDir: "data/train",
			EvalDir:  "data/eval",
		},
	}
}

// Load reads a config file over the defaults. A missing file at the default
// path is fine (the file is optional); a missing file at an explicit path is
// an error, as is any parse or validation failure.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the tool cannot work with.
func (c *Config) Validate() error {
	if c.Overlap.MinConcurrent < 1 {
		return fmt.Errorf("overlap.min_concurrent must be at least 1, got %d", c.Overlap.MinConcurrent)
	}
	if c.Overlap.Workers < 1 {
		return fmt.Errorf("overlap.workers must be at least 1, got %d", c.Overlap.Workers)
	}
	return nil
}
