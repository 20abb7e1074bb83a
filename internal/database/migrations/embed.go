// Package migrations embeds the goose SQL migrations.
package migrations

import (
	"embed"
	"io/fs"
)

// FS holds the Postgres migrations
//
//go:embed *.sql
var FS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// SQLite returns the SQLite migrations rooted at their directory
func SQLite() fs.FS {
	sub, err := fs.Sub(sqliteFS, "sqlite")
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
