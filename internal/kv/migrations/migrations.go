// Package migrations embeds the goose schema migrations of the SQL
// key-value backends, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
