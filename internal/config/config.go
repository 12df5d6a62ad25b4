// Package config loads the tctim command line configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/blacktop/go-tctim"
)

const appName = "tctim"

type Config struct {
	Fit      *bool          `koanf:"fit"`     // fit the image to the terminal (default: true)
	Verbose  bool           `koanf:"verbose"` // debug logging
	Fallback FallbackConfig `koanf:"fallback"`
}

// FallbackConfig is the pixel budget used when the terminal size is unknown.
type FallbackConfig struct {
	Rows int `koanf:"rows"` // default: 64
	Cols int `koanf:"cols"` // default: 64
}

// Load reads the config files in priority order, later files win.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files, skipping the ones that do not exist.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tctim/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./tctim.toml (pwd, highest priority)
		appName + ".toml",
	}
}

// FitEnabled returns whether images are fitted to the terminal.
func (c *Config) FitEnabled() bool {
	return c.Fit == nil || *c.Fit
}

// Options returns the render options with defaults applied.
func (c *Config) Options() tctim.Options {
	opts := tctim.DefaultOptions()
	opts.Fit = c.FitEnabled()
	if c.Fallback.Rows > 0 {
		opts.Fallback.Rows = c.Fallback.Rows
	}
	if c.Fallback.Cols > 0 {
		opts.Fallback.Cols = c.Fallback.Cols
	}
	return opts
}
