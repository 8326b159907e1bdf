package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cptspacemanspiff/batterylogd/internal/record"
)

const (
	minIntervalSeconds = 1
	maxIntervalSeconds = 86400

	defaultLogName = "batterylogd.log"
)

type Config struct {
	Collection CollectionConfig `toml:"collection"`
	Devices    DevicesConfig    `toml:"devices"`
	Log        LogConfig        `toml:"log"`
}

type CollectionConfig struct {
	IntervalSeconds int    `toml:"interval_seconds"`
	TimestampMode   string `toml:"timestamp_mode"`
}

type DevicesConfig struct {
	// Explicit sysfs paths. A non-empty list disables auto-detection for
	// that category.
	Batteries  []string `toml:"batteries"`
	Backlights []string `toml:"backlights"`
}

type LogConfig struct {
	// Path of the append-only sample log. Empty means batterylogd.log in
	// the user's home directory.
	Path string `toml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			IntervalSeconds: 60,
			TimestampMode:   string(record.ModeLocalZ),
		},
	}
}

// Load reads a TOML config file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, Validate(cfg)
}

// Validate checks ranges and enumerations. Any error here is fatal at
// startup.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config must not be nil")
	}
	if err := validateRange("collection.interval_seconds", cfg.Collection.IntervalSeconds, minIntervalSeconds, maxIntervalSeconds); err != nil {
		return err
	}
	if !record.ValidMode(record.TimestampMode(cfg.Collection.TimestampMode)) {
		return fmt.Errorf("collection.timestamp_mode must be one of local-z, utc, local, got %q", cfg.Collection.TimestampMode)
	}
	return nil
}

// LogPath resolves the configured log path, defaulting to
// $HOME/batterylogd.log.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultLogName), nil
}

func validateRange(name string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, value)
	}
	return nil
}
