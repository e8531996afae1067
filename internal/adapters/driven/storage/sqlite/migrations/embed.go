// Package migrations embeds the gazetteer schema migrations.
package migrations

import "embed"

// FS contains the NNN_name.up.sql files.
//
//go:embed *.sql
var FS embed.FS
