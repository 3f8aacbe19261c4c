package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/jackc/pgerrcode"
)

type collectionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCollectionRepository constructs a [CollectionRepository] backed by PostgreSQL.
func NewCollectionRepository(db *DB, logger *logger.Logger) CollectionRepository {
	logger.Debug().Msg("creating collection repository")
	return &collectionRepository{
		db:     db,
		logger: logger,
	}
}

// RecordCollection stores the record and resets the bin in one transaction.
// Nothing is written when either statement fails.
func (r *collectionRepository) RecordCollection(ctx context.Context, record models.CollectionRecord, bin models.BinUpdate) (models.CollectionRecord, error) {
	log := logger.FromContext(ctx)

	var lat, lon, acc sql.NullFloat64
	var captured sql.NullTime
	if record.Location != nil {
		lat = nullFloat(record.Location.Latitude)
		lon = nullFloat(record.Location.Longitude)
		acc = nullFloat(record.Location.Accuracy)
		captured = nullTime(record.Location.CapturedAt)
	}
	geoLat, geoLon, geoAcc, geoAt := geoArgs(bin.GeoLocation)

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createCollection, record.ID, record.Bin.ID, record.CollectedBy.ID,
			record.Weight, record.Timestamp, lat, lon, acc, captured,
			nullFloat(record.DistanceFromBin), nullString(record.ClientReference))
		if err := row.Scan(&record.CreatedAt, &record.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*collectionRepository.RecordCollection").Msg("error inserting collection")
			switch postgresError(err) {
			case pgerrcode.UniqueViolation:
				return ErrDuplicateClientReference
			case pgerrcode.ForeignKeyViolation:
				return ErrBinNotFound
			default:
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		res, err := tx.ExecContext(ctx, updateBinAfterCollection, bin.ID, bin.CurrentLevel, geoLat, geoLon, geoAcc, geoAt)
		if err != nil {
			log.Err(err).Str("func", "*collectionRepository.RecordCollection").Msg("error updating bin")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrBinNotFound
		}

		return nil
	})
	if err != nil {
		return models.CollectionRecord{}, err
	}

	return record, nil
}

func (r *collectionRepository) FindCollectionByClientReference(ctx context.Context, ref string) (models.CollectionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindCollectionByReferenceQuery(ref)
	if err != nil {
		return models.CollectionRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	c, err := scanCollection(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CollectionRecord{}, ErrCollectionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.FindCollectionByClientReference").Msg("error finding collection")
		return models.CollectionRecord{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return c, nil
}

func (r *collectionRepository) ListCollections(ctx context.Context, since *time.Time) ([]models.CollectionRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCollectionsQuery(since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*collectionRepository.ListCollections").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.CollectionRecord, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			log.Err(err).Str("func", "*collectionRepository.ListCollections").Msg("error scanning collection")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
