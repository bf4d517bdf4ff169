// Package migrations embeds the goose SQL migrations of the schema: users,
// places, trips, and comments with photos.
package migrations

import "embed"

// FS holds every *.sql migration, applied by database.Migrate at startup and
// by the integration tests.
//
//go:embed *.sql
var FS embed.FS
