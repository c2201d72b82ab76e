package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cgtop/cgtop/internal/errors"
)

// fileConfig mirrors Config with durations as strings so the written
// YAML reads "2s" rather than a nanosecond count.
type fileConfig struct {
	Root            string `yaml:"root"`
	Interval        string `yaml:"interval"`
	CleanupInterval string `yaml:"cleanup_interval"`
	Retention       string `yaml:"retention"`
	Mock            bool   `yaml:"mock"`
	Watch           bool   `yaml:"watch"`
	Verbose         bool   `yaml:"verbose"`
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	out := fileConfig{
		Root:            cfg.Root,
		Interval:        durationString(cfg.Interval),
		CleanupInterval: durationString(cfg.CleanupInterval),
		Retention:       durationString(cfg.Retention),
		Mock:            cfg.Mock,
		Watch:           cfg.Watch,
		Verbose:         cfg.Verbose,
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to encode config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory", "")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions.")
	}
	return nil
}

func durationString(d time.Duration) string {
	return d.String()
}
