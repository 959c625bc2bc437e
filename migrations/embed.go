// Package migrations embeds the SQL schema for the PostgreSQL roster.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
