// Package migrations embeds the Postgres schema for the client/user
// directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
