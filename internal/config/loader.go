package config

import (
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cgtop/cgtop/internal/errors"
)

const (
	// GlobalConfigDir is the config directory under $HOME.
	GlobalConfigDir = ".config/cgtop"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yaml"
)

// DefaultPath returns the global config file location, or "" when the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// Find locates the config file: an explicit --config path wins, then the
// global location. Returns "" when no file exists, which is not an error.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct, or run 'cgtop init' to create one.")
		}
		return explicit, nil
	}

	global := DefaultPath()
	if global != "" {
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}
	return "", nil
}

// Load reads the config file at path and merges environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'cgtop init' to create one, or specify one with --config.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check that "+path+" is valid YAML.")
	}

	return parse(v, path)
}

// LoadOrDefault loads the found config file, or returns defaults merged
// with environment overrides when none exists.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return parse(newViper(), "")
	}
	return Load(path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CGTOP")
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("root", def.Root)
	v.SetDefault("interval", def.Interval)
	v.SetDefault("cleanup_interval", def.CleanupInterval)
	v.SetDefault("retention", def.Retention)
	v.SetDefault("mock", def.Mock)
	v.SetDefault("watch", def.Watch)
	v.SetDefault("verbose", def.Verbose)
	return v
}

func parse(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{}
	// Environment values arrive as strings; weak typing lets "true" and
	// "2s" decode into bool and duration fields.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(cfg, weak); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}
	if cfg.Interval <= 0 {
		return nil, errors.New(errors.ErrConfig,
			"Sampling interval must be positive",
			"Set interval to a duration like '2s' in "+path)
	}
	return cfg, nil
}
