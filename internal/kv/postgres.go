package kv

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresRepository returns a SQLRepository for PostgreSQL.
func NewPostgresRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: sqlQueries{
		get: `SELECT value FROM kv WHERE key = $1`,
		set: `
		INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`,
		delete: `DELETE FROM kv WHERE key = $1`,
		list:   `SELECT key, value FROM kv`,
		clear:  `DELETE FROM kv`,
	}}
}

// OpenPostgres opens a PostgreSQL database through the pgx stdlib driver.
func OpenPostgres(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}
