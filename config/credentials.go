package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/zalando/go-keyring"
)

const (
	EnvAPIKey = "ALLSCREENSHOTS_API_KEY"

	keyringService = "allscreenshots"
	keyringUser    = "api-key"
)

type KeySource string

const (
	SourceFlag    KeySource = "flag"
	SourceEnv     KeySource = "env"
	SourceConfig  KeySource = "config"
	SourceKeyring KeySource = "keyring"
)

// ResolveAPIKey picks the API key: explicit flag, then
// ALLSCREENSHOTS_API_KEY, then the config file, then the OS keyring.
func ResolveAPIKey(flagValue string, cfg *Config) (string, KeySource, error) {
	if key := strings.TrimSpace(flagValue); key != "" {
		return key, SourceFlag, nil
	}

	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, SourceEnv, nil
	}

	if cfg != nil {
		if key := strings.TrimSpace(cfg.Auth.APIKey); key != "" {
			return key, SourceConfig, nil
		}
	}

	key, err := KeyringGet()
	if err == nil && key != "" {
		return key, SourceKeyring, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		utils.Verbose("keyring lookup failed: %v", err)
	}

	return "", "", types.ErrMissingCredential
}

func KeyringGet() (string, error) {
	return keyring.Get(keyringService, keyringUser)
}

func KeyringSet(key string) error {
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// KeyringDelete removes the stored key; a missing entry is not an error.
func KeyringDelete() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove API key from keyring: %w", err)
	}
	return nil
}
