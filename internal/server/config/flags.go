package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gallery/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-s", "-t", "-d", "-f", "-u", "-m", "-l", "-b", "-r", "-e", "-k", "-p"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC health bind address, empty disables
//	-s string   token HMAC secret
//	-t int      token validity, minutes
//	-d string   PostgreSQL DSN, empty selects JSON files
//	-f string   data directory for JSON files
//	-u string   uploads directory for local blobs
//	-m int      max upload size, MiB
//	-l string   log level
//	-b/-r/-e/-k/-p  S3 bucket, region, base endpoint, access key, secret key
//
// Unknown flags are filtered out first so that -c/-config does not collide.
// A malformed value panics.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenMinutes := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory")
	fs.StringVar(&config.UploadsDir, "u", config.UploadsDir, "uploads directory")
	maxUploadMiB := fs.Int64("m", config.MaxUploadBytes>>20, "max upload size (in MiB)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "k", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		panic(err)
	}

	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	if visited["t"] {
		config.TokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
	}
	if visited["m"] {
		config.MaxUploadBytes = *maxUploadMiB << 20
	}
}
