package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
)

// SeriesRow is one (day, bin type) bucket of collected weight.
type SeriesRow struct {
	Day         string
	Type        models.BinType
	TotalWeight float64
	Count       int
}

type statsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewStatsRepository constructs a [StatsRepository] backed by PostgreSQL.
func NewStatsRepository(db *DB, logger *logger.Logger) StatsRepository {
	logger.Debug().Msg("creating stats repository")
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *statsRepository) CollectionTotals(ctx context.Context, since time.Time) (models.CollectionTotals, error) {
	var totals models.CollectionTotals
	if err := r.db.QueryRowContext(ctx, collectionTotals, since).Scan(&totals.TotalWeight, &totals.TotalCollections); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*statsRepository.CollectionTotals").Msg("error scanning totals")
		return models.CollectionTotals{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return totals, nil
}

func (r *statsRepository) CollectionSeries(ctx context.Context, since time.Time) ([]SeriesRow, error) {
	return queryRows(ctx, r.db, "*statsRepository.CollectionSeries", collectionSeries, since, func(rows *sql.Rows) (SeriesRow, error) {
		var s SeriesRow
		err := rows.Scan(&s.Day, &s.Type, &s.TotalWeight, &s.Count)
		return s, err
	})
}

func (r *statsRepository) CollectorTotals(ctx context.Context, since time.Time) ([]models.CollectorTotal, error) {
	return queryRows(ctx, r.db, "*statsRepository.CollectorTotals", collectorTotals, since, func(rows *sql.Rows) (models.CollectorTotal, error) {
		var c models.CollectorTotal
		err := rows.Scan(&c.UserID, &c.Username, &c.Role, &c.TotalWeight, &c.Count, &c.LastCollection)
		return c, err
	})
}

// BinHotspots returns the twelve bins with the most collected weight.
func (r *statsRepository) BinHotspots(ctx context.Context, since time.Time) ([]models.BinHotspot, error) {
	return queryRows(ctx, r.db, "*statsRepository.BinHotspots", binHotspots, since, func(rows *sql.Rows) (models.BinHotspot, error) {
		var (
			h             models.BinHotspot
			lat, lon, acc sql.NullFloat64
			geoAt         sql.NullTime
			avg           sql.NullFloat64
		)
		err := rows.Scan(&h.BinID, &h.Location, &lat, &lon, &acc, &geoAt, &h.TotalWeight, &h.Count, &h.LastCollection, &avg)
		if lat.Valid && lon.Valid {
			h.GeoLocation = &models.GeoLocation{Latitude: lat.Float64, Longitude: lon.Float64, Accuracy: floatPtr(acc), UpdatedAt: timePtr(geoAt)}
		}
		h.AvgDistance = floatPtr(avg)
		return h, err
	})
}

func (r *statsRepository) PickupStatusCounts(ctx context.Context, since time.Time) ([]models.StatusCount, error) {
	return queryRows(ctx, r.db, "*statsRepository.PickupStatusCounts", pickupStatusCounts, since, func(rows *sql.Rows) (models.StatusCount, error) {
		var s models.StatusCount
		err := rows.Scan(&s.Status, &s.Count)
		return s, err
	})
}

func (r *statsRepository) TransactionStatusCounts(ctx context.Context, since time.Time) ([]models.StatusCount, error) {
	return queryRows(ctx, r.db, "*statsRepository.TransactionStatusCounts", transactionStatusCounts, since, func(rows *sql.Rows) (models.StatusCount, error) {
		var (
			s      models.StatusCount
			amount float64
		)
		err := rows.Scan(&s.Status, &s.Count, &amount)
		s.TotalAmount = &amount
		return s, err
	})
}

func queryRows[T any](ctx context.Context, db *DB, fn, query string, since time.Time, scan func(*sql.Rows) (T, error)) ([]T, error) {
	log := logger.FromContext(ctx)

	rows, err := db.QueryContext(ctx, query, since)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}
