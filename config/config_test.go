package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[auth]
api_key = "sk_live_abcdefghijklmnop"

[defaults]
format = "jpeg"

[display]
protocol = "kitty"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk_live_abcdefghijklmnop", cfg.Auth.APIKey)
	assert.Equal(t, "jpeg", cfg.Defaults.Format)
	assert.Equal(t, "Desktop HD", cfg.Defaults.Device)
	assert.True(t, cfg.Defaults.Display)
	assert.Equal(t, "kitty", cfg.Display.Protocol)
	assert.Equal(t, 80, cfg.Display.Width)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[defaults\nformat = "), 0600))

	_, err := Load(path)
	var ioErr *types.IOError
	assert.True(t, errors.As(err, &ioErr), "expected IOError, got %v", err)
}

func TestSave_RoundTripCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "allscreenshots", "config.toml")

	cfg := Default()
	cfg.Auth.APIKey = "KEY-123"
	cfg.Defaults.Display = false
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom.toml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)
}

func TestSetGet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("defaults.device", "ipad mini"))
	require.NoError(t, cfg.Set("defaults.format", "jpg"))
	require.NoError(t, cfg.Set("defaults.display", "false"))
	require.NoError(t, cfg.Set("display.width", "120"))
	require.NoError(t, cfg.Set("display.protocol", "ITERM"))

	tests := map[string]string{
		"defaults.device":  "iPad Mini",
		"defaults.format":  "jpeg",
		"defaults.display": "false",
		"display.width":    "120",
		"display.protocol": "iterm",
	}
	for key, want := range tests {
		got, err := cfg.Get(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}
}

func TestSet_Rejects(t *testing.T) {
	cfg := Default()
	bad := map[string]string{
		"defaults.display":  "maybe",
		"display.height":    "-3",
		"display.protocol":  "sixel",
		"defaults.device":   "toaster",
		"defaults.nonsense": "1",
	}
	for key, value := range bad {
		err := cfg.Set(key, value)
		var optErr *types.InvalidOptionError
		assert.True(t, errors.As(err, &optErr), "%s=%s: expected InvalidOptionError, got %v", key, value, err)
	}
}

func TestGet_MasksAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Auth.APIKey = "sk_live_1234567890abcd"
	got, err := cfg.Get("auth.api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk_live_...abcd", got)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "", MaskAPIKey(""))
	assert.Equal(t, "************", MaskAPIKey("123456789012"))
	assert.Equal(t, "12345678...0abc", MaskAPIKey("12345678xx0abc"))
}
