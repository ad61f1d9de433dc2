package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	b, err := json.Marshal(data)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3000", c.ServerURL)
	assert.Equal(t, ".gallery-token", filepath.Base(c.TokenFile))
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
}

func TestLoadFrom_FlagsAndRest(t *testing.T) {
	c, rest, err := loadFrom([]string{"-server", "http://example.com:8080/", "-token-file", "/tmp/tok", "upload", "-title", "x", "a.png"}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com:8080", c.ServerURL)
	assert.Equal(t, "/tmp/tok", c.TokenFile)
	assert.Equal(t, []string{"upload", "-title", "x", "a.png"}, rest)
}

func TestLoadFrom_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"server_url":      "http://json:1",
		"token_file":      "/json/token",
		"request_timeout": "5s",
	})
	env := func(k string) (string, bool) {
		if k == "GALLERY_SERVER" {
			return "http://env:2", true
		}
		return "", false
	}

	c, rest, err := loadFrom([]string{"-c", path, "list"}, env)
	require.NoError(t, err)

	want := &Config{ServerURL: "http://env:2", TokenFile: "/json/token", RequestTimeout: 5 * time.Second}
	assert.Empty(t, cmp.Diff(want, c))
	assert.Equal(t, []string{"list"}, rest)

	c, _, err = loadFrom([]string{"-c", path, "-server", "http://flag:3", "list"}, env)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:3", c.ServerURL)
}

func TestLoadFrom_Errors(t *testing.T) {
	_, _, err := loadFrom([]string{"-timeout", "soon"}, noEnv)
	assert.Error(t, err)

	_, _, err = loadFrom([]string{"-c", filepath.Join(t.TempDir(), "missing.json")}, noEnv)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, _, err = loadFrom([]string{"-c", bad}, noEnv)
	assert.Error(t, err)
}
