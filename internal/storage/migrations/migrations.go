// Package migrations embeds the session store schema shared by the
// Postgres and SQLite drivers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
