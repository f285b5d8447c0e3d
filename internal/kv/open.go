package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/taskhub/internal/filex"
)

// Backend names accepted by Open.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DSN         string
	RedisAddr   string
	RedisPrefix string
}

// Open connects to the configured backend and, for SQL backends, applies
// the schema migrations.
func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		if path := filex.SQLitePath(opts.DSN); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, err
			}
		}
		db, err := OpenSQLite(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return migrated(ctx, db, DialectSQLite, NewSQLiteRepository)

	case BackendPostgres:
		db, err := OpenPostgres(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return migrated(ctx, db, DialectPostgres, NewPostgresRepository)

	case BackendRedis:
		c := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedisRepository(c, opts.RedisPrefix), nil

	case BackendMemory:
		return NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func migrated(ctx context.Context, db *sql.DB, dialect string, wrap func(*sql.DB) *SQLRepository) (Repository, error) {
	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return wrap(db), nil
}
