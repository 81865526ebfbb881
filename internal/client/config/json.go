package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"github.com/dmitrijs2005/recipehub/internal/flagx"
	"github.com/dmitrijs2005/recipehub/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "3s" or as integer nanoseconds. Zero values are not applied.
type JSONConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StateDir       string         `json:"state_dir"`
	MaxUploadSize  int64          `json:"max_upload_size"`
}

// parseJSON overlays Config with the JSON file named by -c or -config.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.MaxUploadSize != 0 {
		cfg.MaxUploadSize = jc.MaxUploadSize
	}
	return nil
}

// parseEnv overlays RECIPEHUB_CLI_* variables.
func parseEnv(cfg *Config) error {
	if err := envconfig.Process("RECIPEHUB_CLI", cfg); err != nil {
		return fmt.Errorf("env config: %w", err)
	}
	return nil
}
