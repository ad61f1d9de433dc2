package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultServerURL = "http://localhost:3000"
	tokenFileName    = ".gallery-token"
)

// Config holds runtime settings for the gallery CLI.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults. The token file lives in the
// user's home directory, or the working directory when that is unknown.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.TokenFile = tokenFileName
	if home, err := os.UserHomeDir(); err == nil {
		c.TokenFile = filepath.Join(home, tokenFileName)
	}
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig builds a Config from os.Args and the environment and returns
// the arguments left over for the command dispatcher.
func LoadConfig() (*Config, []string, error) {
	return loadFrom(os.Args[1:], os.LookupEnv)
}

func loadFrom(args []string, lookupEnv func(string) (string, bool)) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}
	if v, ok := lookupEnv("GALLERY_SERVER"); ok && v != "" {
		cfg.ServerURL = v
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
