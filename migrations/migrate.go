// Package migrations embeds the goose schema migrations of the server
// (PostgreSQL) and of the client key-value store (SQLite).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed server/*.sql client/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

var errNilDB = errors.New("db is nil")

// Migrate applies the server schema to a PostgreSQL database.
func Migrate(db *sql.DB) error {
	return migrate(db, "pgx", "server")
}

// MigrateClient applies the client schema to a SQLite database.
func MigrateClient(db *sql.DB) error {
	return migrate(db, "sqlite3", "client")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
