// Package config loads the candid command's settings.
//
// Settings come from a YAML file, found at the --config flag, the
// CANDID_CONFIG environment variable or $XDG_CONFIG_HOME/candid/config.yaml,
// in that order. Command line flags override file values.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ColorModes lists the accepted color settings.
var ColorModes = []string{ColorAuto, ColorAlways, ColorNever}

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config holds the candid command settings.
type Config struct {
	// Format is the default output format of decode: candid, json, cbor,
	// msgpack or yaml.
	Format string `yaml:"format"`

	// Color is auto, always or never.
	Color string `yaml:"color"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// Width is the line width the printer breaks values at.
	Width int `yaml:"width"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:   "candid",
		Color:    ColorAuto,
		Width:    80,
		LogLevel: "warn",
	}
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	if p := os.Getenv("CANDID_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "candid", "config.yaml")
}

// Load reads the config file at path over the defaults. With an empty path
// the default location is tried, and a missing file there is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	if !slices.Contains(ColorModes, c.Color) {
		return fmt.Errorf("invalid color %q: must be one of %v", c.Color, ColorModes)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level %q: must be one of %v", c.LogLevel, LogLevels)
	}
	if c.Width < 0 {
		return fmt.Errorf("invalid width %d", c.Width)
	}
	return nil
}

// BindFlags registers the global flags that locate and override the config.
func BindFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("config", "", "config file (default "+DefaultPath()+")")
	fs.BoolP("verbose", "v", false, "verbose logging")
	fs.String("color", d.Color, "colorize output (auto|always|never)")
	fs.Int("width", d.Width, "line width for printed values")
	fs.String("log-level", d.LogLevel, "log level (debug|info|warn|error)")
}

// FromFlags loads the config named by the --config flag and applies the
// flags the user set explicitly. --verbose implies log level debug.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if fs.Changed("color") {
		if cfg.Color, err = fs.GetString("color"); err != nil {
			return nil, err
		}
	}
	if fs.Changed("width") {
		if cfg.Width, err = fs.GetInt("width"); err != nil {
			return nil, err
		}
	}
	if fs.Changed("log-level") {
		if cfg.LogLevel, err = fs.GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if verbose, _ := fs.GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
