package kv

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is the part of database/sql the SQL backend writes through.
// Both *sql.DB and *sql.Tx satisfy it.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// inTx runs fn in a transaction on db. It commits when fn returns nil and
// rolls back otherwise, including when fn panics.
func inTx(ctx context.Context, db *sql.DB, fn func(tx execer) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	done = true
	return nil
}
