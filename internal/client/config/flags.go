package config

import (
	"flag"
	"io"
	"strings"
)

// parseFlags reads global flags that precede the command name:
//
//	-server string      base URL of the gallery server
//	-token-file string  where the session token is kept
//	-timeout duration   per-request timeout
//	-c/-config string   JSON config file (consumed by parseJson)
//
// Parsing stops at the first non-flag argument; it and everything after it
// are returned unchanged.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "token file path")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	var ignored string
	fs.StringVar(&ignored, "c", "", "config file")
	fs.StringVar(&ignored, "config", "", "config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return fs.Args(), nil
}
