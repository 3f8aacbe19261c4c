package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
)

// Storages groups the server-side repositories over one PostgreSQL pool.
type Storages struct {
	UserRepository        UserRepository
	BinRepository         BinRepository
	PickupRepository      PickupRepository
	TransactionRepository TransactionRepository
	CollectionRepository  CollectionRepository
	StatsRepository       StatsRepository

	DB *DB
}

// NewStorages connects to PostgreSQL, applies migrations and builds every
// repository.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB wires repositories over an already opened database.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		BinRepository:         NewBinRepository(db, log),
		PickupRepository:      NewPickupRepository(db, log),
		TransactionRepository: NewTransactionRepository(db, log),
		CollectionRepository:  NewCollectionRepository(db, log),
		StatsRepository:       NewStatsRepository(db, log),
		DB:                    db,
	}
}

// Close releases the connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
