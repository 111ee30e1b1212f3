package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override values from the config file.
const (
	EnvBackend  = "READLIST_BACKEND"
	EnvDriver   = "READLIST_DRIVER"
	EnvDBPath   = "READLIST_DATABASE_PATH"
	EnvLogLevel = "READLIST_LOG_LEVEL"
)

// LoadEnv loads variables from the given dotenv files into the process environment.
//
// Missing files are skipped and variables already set are left untouched.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values with any READLIST_* variables present in the environment.
func ApplyEnv(c *Config) {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Database.Backend = v
	}
	if v := os.Getenv(EnvDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}
