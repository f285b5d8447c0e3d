package kv

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// NewSQLiteRepository returns a SQLRepository for a modernc.org/sqlite
// database. The kv table must already exist (see RunMigrations).
func NewSQLiteRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: sqlQueries{
		get: `SELECT value FROM kv WHERE key = ?`,
		set: `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`,
		delete: `DELETE FROM kv WHERE key = ?`,
		list:   `SELECT key, value FROM kv`,
		clear:  `DELETE FROM kv`,
	}}
}

// OpenSQLite opens the SQLite database at dsn. SQLite allows one writer at a
// time, so the pool is limited to a single connection.
func OpenSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}
