package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/levdist/internal/segment"
)

// Config represents the complete levdist configuration
type Config struct {
	Segmentation SegmentationConfig `mapstructure:"segmentation"`
	Pool         PoolConfig         `mapstructure:"pool"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// SegmentationConfig controls how strings are split into comparison units
type SegmentationConfig struct {
	// Mode is the default unit of comparison: "codepoint" or "grapheme" (default: "codepoint")
	Mode string `mapstructure:"mode"`
}

// ParsedMode returns Mode as a segment.Mode, falling back to code points for
// unrecognized names
func (c *SegmentationConfig) ParsedMode() segment.Mode {
	m, err := segment.ParseMode(c.Mode)
	if err != nil {
		return segment.CodePoint
	}
	return m
}

// PoolConfig controls the worker pools used for batch computation
type PoolConfig struct {
	// DefaultWorkers is the size of the pool used when a batch does not name a
	// worker count. 0 means one worker per available CPU (default: 0)
	DefaultWorkers int `mapstructure:"default_workers"`
	// MaxWorkers is the largest pool that will be constructed, 0 = no limit (default: 0)
	MaxWorkers int `mapstructure:"max_workers"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level"`
	// Dir is the directory for the log file. Empty writes to stderr.
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Segmentation: SegmentationConfig{
			Mode: "codepoint",
		},
		Pool: PoolConfig{
			DefaultWorkers: 0,
			MaxWorkers:     0,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "warn",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with the global viper instance
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Segmentation defaults
	v.SetDefault("segmentation.mode", defaults.Segmentation.Mode)

	// Pool defaults
	v.SetDefault("pool.default_workers", defaults.Pool.DefaultWorkers)
	v.SetDefault("pool.max_workers", defaults.Pool.MaxWorkers)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "levdist")
	}
	// Fall back to ~/.config/levdist
	home, err := os.UserHomeDir()
	if err != nil {
		return ".levdist"
	}
	return filepath.Join(home, ".config", "levdist")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
