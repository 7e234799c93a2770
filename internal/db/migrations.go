// Package db carries the embedded SQL migrations applied by cmd/migrate.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
