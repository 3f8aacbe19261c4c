package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
)

// kvQuerier is satisfied by both *sql.DB and *sql.Tx.
type kvQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteKeyValueStore struct {
	db     *DB
	q      kvQuerier
	inTx   bool
	logger *logger.Logger
}

// NewKeyValueStore returns a [KeyValueStore] over the client SQLite database.
func NewKeyValueStore(db *DB, logger *logger.Logger) KeyValueStore {
	logger.Debug().Msg("creating key-value store")
	return &sqliteKeyValueStore{db: db, q: db, logger: logger}
}

func (s *sqliteKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.q.QueryRowContext(ctx, getKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Get").Str("key", key).Msg("error reading key")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, nil
}

func (s *sqliteKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.q.ExecContext(ctx, putKV, key, value); err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Put").Str("key", key).Msg("error writing key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqliteKeyValueStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.ExecContext(ctx, deleteKV, key); err != nil {
		s.logger.Err(err).Str("func", "*sqliteKeyValueStore.Delete").Str("key", key).Msg("error deleting key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// Tx opens an immediate transaction, so another process sharing the file
// blocks on its own Tx until this one commits.
func (s *sqliteKeyValueStore) Tx(ctx context.Context, fn func(kv KeyValueStore) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&sqliteKeyValueStore{db: s.db, q: tx, inTx: true, logger: s.logger})
	})
}

// GetJSON decodes the document stored under key into v. found is false when
// the key is absent.
func GetJSON(ctx context.Context, kv KeyValueStore, key string, v any) (found bool, err error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w %q: %w", ErrCorruptDocument, key, err)
	}
	return true, nil
}

// PutJSON stores v as a JSON document under key.
func PutJSON(ctx context.Context, kv KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding %q: %w", key, err)
	}
	return kv.Put(ctx, key, raw)
}
