// Package config loads validation settings from an optional YAML file,
// layered over the built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/printcheck/pkg/feasibility"
)

// Config holds all printcheck settings.
type Config struct {
	Thresholds feasibility.Thresholds `yaml:"thresholds"`
	Tolerances feasibility.Tolerances `yaml:"tolerances"`
	Logging    LoggingConfig          `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the documented fallback values.
func Default() *Config {
	return &Config{
		Thresholds: feasibility.DefaultThresholds(),
		Tolerances: feasibility.DefaultTolerances(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. Fields missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config file when path is non-empty and falls back
// to the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
