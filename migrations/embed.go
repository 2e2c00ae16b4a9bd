// Package migrations embeds the versioned SQL files applied to SQLite stores.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
