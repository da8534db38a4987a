// Package migrations embeds the goose SQL migrations applied at startup in
// the Postgres deployment.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
