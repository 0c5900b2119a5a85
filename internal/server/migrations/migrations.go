// Package migrations embeds the Postgres schema migrations run by goose at
// server start.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
