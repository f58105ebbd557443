package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestResolveAPIKey_Precedence(t *testing.T) {
	keyring.MockInit()

	tests := []struct {
		name       string
		flag       string
		env        string
		file       string
		want       string
		wantSource KeySource
	}{
		{name: "flag beats all", flag: "F", env: "E", file: "C", want: "F", wantSource: SourceFlag},
		{name: "flag beats env", flag: "F", env: "E", want: "F", wantSource: SourceFlag},
		{name: "flag beats file", flag: "F", file: "C", want: "F", wantSource: SourceFlag},
		{name: "env beats file", env: "E", file: "C", want: "E", wantSource: SourceEnv},
		{name: "env only", env: "E", want: "E", wantSource: SourceEnv},
		{name: "file only", file: "C", want: "C", wantSource: SourceConfig},
		{name: "flag only", flag: "F", want: "F", wantSource: SourceFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.env)
			cfg := Default()
			cfg.Auth.APIKey = tt.file

			got, source, err := ResolveAPIKey(tt.flag, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestResolveAPIKey_Missing(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")

	_, _, err := ResolveAPIKey("", Default())
	assert.True(t, errors.Is(err, types.ErrMissingCredential))
}

func TestResolveAPIKey_KeyringIsLastResort(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, KeyringSet("from-keyring"))
	defer func() { _ = KeyringDelete() }()

	got, source, err := ResolveAPIKey("", Default())
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", got)
	assert.Equal(t, SourceKeyring, source)

	cfg := Default()
	cfg.Auth.APIKey = "from-file"
	got, _, err = ResolveAPIKey("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)
}

func TestKeyringDelete_MissingIsNotAnError(t *testing.T) {
	keyring.MockInit()
	assert.NoError(t, KeyringDelete())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ALLSCREENSHOTS_TEST_VAR=from-dotenv\nALLSCREENSHOTS_TEST_KEEP=from-dotenv\n"), 0600))

	t.Setenv("ALLSCREENSHOTS_TEST_VAR", "")
	os.Unsetenv("ALLSCREENSHOTS_TEST_VAR")
	t.Setenv("ALLSCREENSHOTS_TEST_KEEP", "from-env")

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv("ALLSCREENSHOTS_TEST_VAR"))
	assert.Equal(t, "from-env", os.Getenv("ALLSCREENSHOTS_TEST_KEEP"))
}
