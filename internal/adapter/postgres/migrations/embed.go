// Package migrations holds the goose SQL migrations for the twin schema.
package migrations

import "embed"

// FS contains every migration file, at the root of the filesystem.
//
//go:embed *.sql
var FS embed.FS
