package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
)

// DB wraps a *sql.DB together with the dialect-specific migration runner.
type DB struct {
	*sql.DB
	migrate func(*sql.DB) error
	logger  *logger.Logger
}

// Migrate applies the embedded schema for the connected dialect.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return errors.New("no migrations configured for db")
	}
	return db.migrate(db.DB)
}

// withTx runs fn inside a transaction. fn's error rolls the transaction back
// and is returned unchanged.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
