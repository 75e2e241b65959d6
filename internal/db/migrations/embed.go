// filepath: internal/db/migrations/embed.go
package migrations

import "embed"

// FS embeds the goose SQL migrations that create the pets schema.
//
//go:embed *.sql
var FS embed.FS
