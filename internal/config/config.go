// Package config loads factz settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/factz/internal/drill"
	"github.com/abhisek/factz/internal/selector"
)

// Config is the full application configuration.
type Config struct {
	Drill drill.Config `yaml:"drill"`
	Log   LogConfig    `yaml:"log"`

	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`
}

// LogConfig controls the zerolog sink.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Drill: drill.DefaultConfig(),
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultPath resolves the config file location:
// 1. FACTZ_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/factz/config.yaml
// 3. ~/.config/factz/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("FACTZ_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "factz", "config.yaml"), nil
}

// Load reads configuration from path, or from DefaultPath when path is
// empty. A missing default file yields the defaults; a missing explicit
// file is an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
		explicit = os.Getenv("FACTZ_CONFIG") != ""
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies FACTZ_* overrides.
func (c *Config) applyEnv() error {
	if v := os.Getenv("FACTZ_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("FACTZ_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FACTZ_START_LEVEL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FACTZ_START_LEVEL: %w", err)
		}
		c.Drill.StartLevel = n
	}
	if v := os.Getenv("FACTZ_VARIANT"); v != "" {
		c.SetVariant(selector.Variant(v))
	}
	return nil
}

// SetVariant switches the selector variant. Classic also turns off
// trivial-fact damping to match the original drill.
func (c *Config) SetVariant(v selector.Variant) {
	c.Drill.Selector.Variant = v
	if v == selector.VariantClassic {
		c.Drill.Selector.DampTrivial = false
		if c.Drill.StartLevel < 1 {
			c.Drill.StartLevel = 1
		}
	}
}

// Validate rejects impossible settings.
func (c *Config) Validate() error {
	if err := c.Drill.Validate(); err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}
