// Package migrations embeds the goose SQL migrations for the ledger schema.
//
// The statements stick to the subset of SQL understood by both PostgreSQL
// and SQLite, so one migration set serves both storage backends.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
