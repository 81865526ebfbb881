package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "RECIPEHUB"

// loadDotEnv exports variables from path into the process environment
// without overriding ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseEnv overlays RECIPEHUB_* variables; unset variables keep current values.
func parseEnv(cfg *Config) error {
	return envconfig.Process(envPrefix, cfg)
}
