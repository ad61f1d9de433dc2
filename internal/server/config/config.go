// Package config handles configuration for the gallery server: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the gallery server.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses; an empty GRPCAddr disables the health endpoint.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the JSON flat-file backend in DataDir.
//   - UploadsDir: local directory for image blobs when no S3 bucket is configured.
//   - MaxUploadBytes: upper bound for a single uploaded image.
//   - S3*: object storage settings; a non-empty S3Bucket selects the S3 blob store.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	SecretKey             string
	TokenValidityDuration time.Duration
	DatabaseDSN           string
	DataDir               string
	UploadsDir            string
	MaxUploadBytes        int64
	LogLevel              string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	S3AccessKey           string
	S3SecretKey           string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.GRPCAddr = ":50051"
	c.SecretKey = "dev-secret"
	c.TokenValidityDuration = 2 * time.Hour
	c.DatabaseDSN = ""
	c.DataDir = "data"
	c.UploadsDir = "uploads"
	c.MaxUploadBytes = 10 << 20
	c.LogLevel = "info"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// UsePostgres reports whether the SQL backend is configured.
func (c *Config) UsePostgres() bool { return c.DatabaseDSN != "" }

// UseS3 reports whether image blobs go to object storage.
func (c *Config) UseS3() bool { return c.S3Bucket != "" }

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then environment variables, then command-line flags.
func LoadConfig() *Config {
	return loadFrom(os.Args[1:], os.LookupEnv)
}

func loadFrom(args []string, lookupEnv func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, lookupEnv)
	parseFlags(cfg, args)
	return cfg
}
