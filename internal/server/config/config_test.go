package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, "dev-secret", c.SecretKey)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "uploads", c.UploadsDir)
	assert.Equal(t, int64(10<<20), c.MaxUploadBytes)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.False(t, c.UsePostgres())
	assert.False(t, c.UseS3())
}

func TestLoadFrom_UsesDefaultsWithoutInput(t *testing.T) {
	c := loadFrom(nil, noEnv)
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadFrom_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"http_addr":  ":7000",
		"secret_key": "from-json",
		"data_dir":   "/var/gallery",
	})

	env := func(k string) (string, bool) {
		switch k {
		case "SECRET_KEY":
			return "from-env", true
		case "PORT":
			return "8080", true
		}
		return "", false
	}

	c := loadFrom([]string{"-c", path, "-s", "from-flag"}, env)

	assert.Equal(t, ":8080", c.HTTPAddr, "env overrides json")
	assert.Equal(t, "from-flag", c.SecretKey, "flags override env")
	assert.Equal(t, "/var/gallery", c.DataDir, "json overrides defaults")
}

func TestParseEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want func(c *Config)
	}{
		{
			name: "bare port",
			env:  map[string]string{"PORT": "10000"},
			want: func(c *Config) { c.HTTPAddr = ":10000" },
		},
		{
			name: "full address",
			env:  map[string]string{"PORT": "127.0.0.1:9000"},
			want: func(c *Config) { c.HTTPAddr = "127.0.0.1:9000" },
		},
		{
			name: "secret and dsn",
			env:  map[string]string{"SECRET_KEY": "s3cr3t", "DATABASE_DSN": "postgres://x"},
			want: func(c *Config) { c.SecretKey = "s3cr3t"; c.DatabaseDSN = "postgres://x" },
		},
		{
			name: "empty values are ignored for port and secret",
			env:  map[string]string{"PORT": "", "SECRET_KEY": ""},
			want: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got, want Config
			got.LoadDefaults()
			want.LoadDefaults()
			tt.want(&want)

			parseEnv(&got, func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			})
			assert.Equal(t, want, got)
		})
	}
}
