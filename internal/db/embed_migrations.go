package db

import "embed"

// MigrationFS embeds the SQL migrations for the clients directory and the
// verification_logs attempt table. Applied by cmd/migrate via internal/db/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
