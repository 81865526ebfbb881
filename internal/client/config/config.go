package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the RecipeHub CLI.
//
// Fields:
//   - ServerURL: base URL of the JSON API, e.g. http://localhost:8080.
//   - RequestTimeout: upper bound for one API call.
//   - StateDir: where the session file lives; empty means ~/.recipehub.
//   - MaxUploadSize: largest image the upload command accepts, in bytes.
type Config struct {
	ServerURL      string        `envconfig:"SERVER_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	StateDir       string        `envconfig:"STATE_DIR"`
	MaxUploadSize  int64         `envconfig:"MAX_UPLOAD_SIZE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.StateDir = ""
	c.MaxUploadSize = 5 << 20
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args and panics on error.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
