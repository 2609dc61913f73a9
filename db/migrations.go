// Package db embeds the ordered SQL migrations of the article store.
package db

import "embed"

// Migrations holds migrations/NNNNNN_name.{up,down}.sql.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
