package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/kv"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/store"
)

// Config holds runtime settings for the TaskHub CLI.
//
// Fields:
//   - StorageBackend: one of sqlite, postgres, redis, memory.
//   - DatabaseDSN: SQLite file or PostgreSQL connection string.
//   - RedisAddr, RedisPrefix: Redis endpoint and key prefix.
//   - Latency: simulated delay before each store operation.
//   - SecretKey: HMAC key for session tokens.
//   - TokenTTL: session lifetime; zero means sessions never expire.
//   - MasterPassword: password given to the seeded administrator.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StorageBackend string
	DatabaseDSN    string
	RedisAddr      string
	RedisPrefix    string
	Latency        time.Duration
	SecretKey      string
	TokenTTL       time.Duration
	MasterPassword string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = kv.BackendSQLite
	c.DatabaseDSN = "taskhub.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "taskhub:"
	c.Latency = store.DefaultLatency
	c.SecretKey = "taskhub-local-secret"
	c.TokenTTL = store.DefaultTokenTTL
	c.MasterPassword = common.DefaultMasterPassword
	c.LogLevel = "info"
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if -c/-config is given) and command-line flags. Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case kv.BackendSQLite, kv.BackendPostgres, kv.BackendRedis, kv.BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative: %s", c.Latency)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// StorageOptions maps the storage settings onto kv.Options.
func (c *Config) StorageOptions() kv.Options {
	return kv.Options{
		Backend:     c.StorageBackend,
		DSN:         c.DatabaseDSN,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// StoreOptions maps the store settings onto store options.
func (c *Config) StoreOptions(logger logging.Logger) []store.Option {
	return []store.Option{
		store.WithLatency(c.Latency),
		store.WithTokenSecret([]byte(c.SecretKey)),
		store.WithTokenTTL(c.TokenTTL),
		store.WithMasterPassword(c.MasterPassword),
		store.WithLogger(logger),
	}
}
