package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/kv"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "sqlite", c.StorageBackend)
	assert.Equal(t, "taskhub.db", c.DatabaseDSN)
	assert.Equal(t, 50*time.Millisecond, c.Latency)
	assert.Equal(t, 7*24*time.Hour, c.TokenTTL)
	assert.Equal(t, "MasterDummy@123", c.MasterPassword)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoad_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func writeJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Precedence(t *testing.T) {
	path := writeJSON(t, `{
		"storage_backend": "redis",
		"redis_addr": "10.0.0.1:6379",
		"latency": "5ms",
		"token_ttl": 3600000000000,
		"log_level": "debug"
	}`)

	cfg, err := Load([]string{"repl", "-c", path, "-latency", "0s", "-l=warn", "--unrelated", "x"})
	require.NoError(t, err)

	want := defaults()
	want.StorageBackend = "redis"
	want.RedisAddr = "10.0.0.1:6379"
	want.Latency = 0
	want.TokenTTL = time.Hour
	want.LogLevel = "warn"
	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoad_JSONExplicitZero(t *testing.T) {
	path := writeJSON(t, `{"latency": 0, "database_dsn": ""}`)

	cfg, err := Load([]string{"-config", path})
	require.NoError(t, err)
	assert.Zero(t, cfg.Latency)
	assert.Empty(t, cfg.DatabaseDSN)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args func(t *testing.T) []string
	}{
		{"missing file", func(t *testing.T) []string { return []string{"-c", filepath.Join(t.TempDir(), "nope.json")} }},
		{"bad json", func(t *testing.T) []string { return []string{"-c", writeJSON(t, "{")} }},
		{"bad duration flag", func(t *testing.T) []string { return []string{"-latency", "soon"} }},
		{"unknown backend", func(t *testing.T) []string { return []string{"-backend", "mongo"} }},
		{"negative latency", func(t *testing.T) []string { return []string{"-latency=-1s"} }},
		{"bad log level", func(t *testing.T) []string { return []string{"-l", "loud"} }},
		{"empty secret", func(t *testing.T) []string { return []string{"-c", writeJSON(t, `{"secret_key": ""}`)} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args(t))
			require.Error(t, err)
		})
	}
}

func TestStorageAndStoreOptions(t *testing.T) {
	c := defaults()
	c.StorageBackend = kv.BackendRedis
	c.RedisPrefix = "p:"

	opts := c.StorageOptions()
	assert.Equal(t, kv.Options{Backend: "redis", DSN: "taskhub.db", RedisAddr: "127.0.0.1:6379", RedisPrefix: "p:"}, opts)
	assert.Len(t, c.StoreOptions(logging.Discard()), 5)
}
