package migrations

import "embed"

// FS contains embedded SQLite migrations for wedding details storage.
//
//go:embed *.sql
var FS embed.FS
