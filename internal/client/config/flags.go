package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/recipehub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: args are filtered to the flags handled here using
// flagx.FilterArgs, so -c/-config and unknown flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s"})

	fs := flag.NewFlagSet("recipehub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the RecipeHub server")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "directory for the local session file")

	return fs.Parse(args)
}
