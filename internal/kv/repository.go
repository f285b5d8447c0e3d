// Package kv provides the durable key-value storage behind the TaskHub
// store. Each key holds one serialized value; the store keeps four of them
// (profiles, tasks, users and the current session).
//
// Backends
//
//   - SQLite (default): a single kv table, schema applied by goose.
//   - PostgreSQL: same table through the pgx stdlib driver.
//   - Redis: one string key per entry under a configurable prefix.
//   - Memory: process-local map, lost on exit.
//
// All backends follow the same contract: Get returns (nil, nil) for an
// absent key, Delete of an absent key is not an error, and SetMany writes
// every pair or none of them.
package kv

import "context"

// Repository is a durable key-value store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany atomically stores all pairs.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}
