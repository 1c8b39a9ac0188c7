package postgres

import "embed"

// MigrationsFS embeds the goose migration scripts so the server binary can
// apply them without a checkout of the source tree.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
