// Package config loads runtime configuration for the RecipeHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. RECIPEHUB_CLI_* environment variables.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the RecipeHub server
//	-t duration   HTTP request timeout, e.g. 10s
//	-s string     directory holding the local session file
package config
