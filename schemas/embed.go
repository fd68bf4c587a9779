// Package schemas holds the MySQL schema of the translation history.
package schemas

import "embed"

// Migrations are applied in file name order by database.Migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
