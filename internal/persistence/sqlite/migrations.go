package sqlite

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrate applies pending schema migrations.
func Migrate(db *sql.DB) error {
	m := sqlmigrator.New(db, darwin.SqliteDialect{})
	return m.Migrate(migrationFiles, "sql")
}
