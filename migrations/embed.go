// Package migrations embeds the SQL schema applied at server startup.
package migrations

import "embed"

// FS holds the golang-migrate formatted up/down files
//
//go:embed *.sql
var FS embed.FS
