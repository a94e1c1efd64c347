// Package migrations embeds the SQL schema migrations for the notification
// store, applied with pg.Migrate at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
