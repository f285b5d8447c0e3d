// Package config loads runtime configuration for the TaskHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-backend string          storage backend: sqlite, postgres, redis or memory
//	-d string                SQLite file or PostgreSQL DSN
//	-r string                Redis address host:port
//	-redis-prefix string     prefix of every Redis key
//	-latency duration        simulated delay per operation, e.g. 50ms
//	-k string                session token signing key
//	-ttl duration            session lifetime, 0 for no expiry
//	-master-password string  password of the seeded administrator
//	-l string                log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "50ms" or
// integer nanoseconds. Absent keys keep their earlier value:
//
//	{
//	  "storage_backend": "sqlite",
//	  "database_dsn": "taskhub.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "taskhub:",
//	  "latency": "50ms",
//	  "secret_key": "change-me",
//	  "token_ttl": "168h",
//	  "master_password": "MasterDummy@123",
//	  "log_level": "info"
//	}
//
// Environment variables are not read; use the JSON file or flags.
package config
