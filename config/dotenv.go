package config

import (
	"errors"
	"io/fs"

	"github.com/allscreenshots/allscreenshots-cli/utils"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		err := godotenv.Load(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		utils.Verbose("loaded environment from %s", p)
	}
	return nil
}
