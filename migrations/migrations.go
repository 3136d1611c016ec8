// Package migrations embeds the versioned SQL schema for each supported
// database and exposes it as a golang-migrate source.
package migrations

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// Source returns the migration files for driver ("mysql" or "postgres").
func Source(driver string) (source.Driver, error) {
	switch driver {
	case "mysql", "postgres":
		return iofs.New(files, driver)
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}
