package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/taskhub/internal/flagx"
)

// Flags lists every command-line flag owned by this package, in both
// single and double dash form. Other parsers strip them with flagx.Strip.
var Flags = []string{
	"-c", "-config", "--config",
	"-backend", "--backend",
	"-d", "--d",
	"-r", "--r",
	"-redis-prefix", "--redis-prefix",
	"-latency", "--latency",
	"-k", "--k",
	"-ttl", "--ttl",
	"-master-password", "--master-password",
	"-l", "--l",
}

// parseFlags overlays cfg with the flags it owns, ignoring all other args.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.Filter(args, Flags...)

	fs := flag.NewFlagSet("taskhub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to config file")
	fs.StringVar(&configPath, "config", "", "path to config file")

	fs.StringVar(&cfg.StorageBackend, "backend", cfg.StorageBackend, "storage backend: sqlite, postgres, redis or memory")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite file or PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Redis key prefix")
	fs.DurationVar(&cfg.Latency, "latency", cfg.Latency, "simulated delay per operation")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "session token signing key")
	fs.DurationVar(&cfg.TokenTTL, "ttl", cfg.TokenTTL, "session lifetime")
	fs.StringVar(&cfg.MasterPassword, "master-password", cfg.MasterPassword, "administrator password")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
