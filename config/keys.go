package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/types"
)

var protocols = []string{"auto", "kitty", "iterm", "blocks", "none"}

type setting struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

var settings = map[string]setting{
	"defaults.device": {
		get: func(c *Config) string { return c.Defaults.Device },
		set: func(c *Config, v string) error {
			preset, ok := types.FindDevicePreset(v)
			if !ok {
				return types.InvalidOption("", "unknown device %q", v)
			}
			c.Defaults.Device = preset.Name
			return nil
		},
	},
	"defaults.format": {
		get: func(c *Config) string { return c.Defaults.Format },
		set: func(c *Config, v string) error {
			f, err := types.NormalizeFormat(v)
			if err != nil {
				return err
			}
			c.Defaults.Format = f
			return nil
		},
	},
	"defaults.output_dir": {
		get: func(c *Config) string { return c.Defaults.OutputDir },
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return types.InvalidOption("", "output_dir cannot be empty")
			}
			c.Defaults.OutputDir = v
			return nil
		},
	},
	"defaults.display": {
		get: func(c *Config) string { return strconv.FormatBool(c.Defaults.Display) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return types.InvalidOption("", "defaults.display must be true or false, got %q", v)
			}
			c.Defaults.Display = b
			return nil
		},
	},
	"display.protocol": {
		get: func(c *Config) string { return c.Display.Protocol },
		set: func(c *Config, v string) error {
			v = strings.ToLower(v)
			for _, p := range protocols {
				if p == v {
					c.Display.Protocol = v
					return nil
				}
			}
			return types.InvalidOption("", "display.protocol must be one of %s", strings.Join(protocols, ", "))
		},
	},
	"display.width": {
		get: func(c *Config) string { return strconv.Itoa(c.Display.Width) },
		set: func(c *Config, v string) error {
			n, err := parsePositive("display.width", v)
			if err != nil {
				return err
			}
			c.Display.Width = n
			return nil
		},
	},
	"display.height": {
		get: func(c *Config) string { return strconv.Itoa(c.Display.Height) },
		set: func(c *Config, v string) error {
			n, err := parsePositive("display.height", v)
			if err != nil {
				return err
			}
			c.Display.Height = n
			return nil
		},
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) Set(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return unknownKey(key)
	}
	return s.set(c, value)
}

// Get returns a setting's value. auth.api_key is returned masked.
func (c *Config) Get(key string) (string, error) {
	if key == "auth.api_key" {
		if c.Auth.APIKey == "" {
			return "", nil
		}
		return MaskAPIKey(c.Auth.APIKey), nil
	}

	s, ok := settings[key]
	if !ok {
		return "", unknownKey(key)
	}
	return s.get(c), nil
}

func unknownKey(key string) error {
	return types.InvalidOption("", "unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
}

func parsePositive(key, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, types.InvalidOption("", "%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// MaskAPIKey hides all but the first 8 and last 4 characters.
func MaskAPIKey(key string) string {
	if len(key) <= 12 {
		return strings.Repeat("*", len(key))
	}
	return fmt.Sprintf("%s...%s", key[:8], key[len(key)-4:])
}
