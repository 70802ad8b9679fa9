package migrations

import "embed"

// FS contains the reference database schema and seed data.
//
//go:embed *.sql
var FS embed.FS
