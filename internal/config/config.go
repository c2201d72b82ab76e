// Package config loads and persists dashboard settings. Values merge in
// precedence order: built-in defaults, then the config file, then CGTOP_*
// environment variables, then command-line flags.
package config

import (
	"time"

	"github.com/cgtop/cgtop/internal/cgroup"
)

// Config holds every tunable of the dashboard.
type Config struct {
	// Root is the monitored cgroup hierarchy path.
	Root string `mapstructure:"root" yaml:"root"`
	// Interval between hierarchy samples.
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	// CleanupInterval between history-pruning passes.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
	// Retention bounds how far back per-cgroup history is kept.
	Retention time.Duration `mapstructure:"retention" yaml:"retention"`
	// Mock renders synthetic data instead of reading the hierarchy.
	Mock bool `mapstructure:"mock" yaml:"mock"`
	// Watch resamples early when cgroups appear or disappear.
	Watch bool `mapstructure:"watch" yaml:"watch"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Root:            cgroup.DefaultRoot,
		Interval:        2 * time.Second,
		CleanupInterval: 30 * time.Second,
		Retention:       5 * time.Minute,
		Watch:           true,
	}
}
