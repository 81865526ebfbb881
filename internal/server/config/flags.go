package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/recipehub/internal/flagx"
)

var ownFlags = []string{"-a", "-g", "-d", "-b", "-s", "-t", "-r", "-l"}

// parseFlags overlays command-line flags.
//
//	-a string     HTTP bind address (e.g. ":8080")
//	-g string     gRPC health bind address
//	-d string     PostgreSQL DSN
//	-b string     storage backend: postgres or memory
//	-s string     JWT HMAC secret key
//	-t duration   access token validity (e.g. 15m)
//	-r duration   refresh token validity (e.g. 168h)
//	-l string     log level
//
// Only the flags listed above are looked at, so -c/-config and flags owned
// by other components do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("recipehub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP address and port")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (postgres|memory)")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.AccessTokenValidityDuration, "t", cfg.AccessTokenValidityDuration, "access token validity")
	fs.DurationVar(&cfg.RefreshTokenValidityDuration, "r", cfg.RefreshTokenValidityDuration, "refresh token validity")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(flagx.FilterArgs(args, ownFlags))
}
