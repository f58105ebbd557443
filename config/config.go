// Package config loads and saves the per-user TOML configuration and
// resolves the API key from flags, environment, file and keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "ALLSCREENSHOTS_CONFIG"

	configDirName  = "allscreenshots"
	configFileName = "config.toml"
)

type Config struct {
	Auth     AuthConfig     `toml:"auth" json:"auth"`
	Defaults DefaultsConfig `toml:"defaults" json:"defaults"`
	Display  DisplayConfig  `toml:"display" json:"display"`
}

type AuthConfig struct {
	APIKey string `toml:"api_key,omitempty" json:"apiKey,omitempty"`
}

type DefaultsConfig struct {
	Device    string `toml:"device" json:"device"`
	Format    string `toml:"format" json:"format"`
	OutputDir string `toml:"output_dir" json:"outputDir"`
	Display   bool   `toml:"display" json:"display"`
}

type DisplayConfig struct {
	Protocol string `toml:"protocol" json:"protocol"`
	Width    int    `toml:"width" json:"width"`
	Height   int    `toml:"height" json:"height"`
}

func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Device:    types.DefaultDevice,
			Format:    types.FormatPNG,
			OutputDir: "./screenshots",
			Display:   true,
		},
		Display: DisplayConfig{
			Protocol: "auto",
			Width:    80,
			Height:   24,
		},
	}
}

// DefaultPath returns $ALLSCREENSHOTS_CONFIG or
// <user config dir>/allscreenshots/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads path over the built-in defaults. A missing file is not an
// error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, &types.IOError{Op: "read config", Path: path, Err: err}
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &types.IOError{Op: "parse config", Path: path, Err: err}
	}

	return cfg, nil
}

// Save writes the config, creating parent directories. The file holds
// the API key, so it is only readable by the owner.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return &types.IOError{Op: "create config directory", Path: filepath.Dir(path), Err: err}
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return &types.IOError{Op: "write config", Path: path, Err: err}
	}

	return nil
}
