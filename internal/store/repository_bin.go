package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/jackc/pgerrcode"
)

type binRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewBinRepository constructs a [BinRepository] backed by PostgreSQL.
func NewBinRepository(db *DB, logger *logger.Logger) BinRepository {
	logger.Debug().Msg("creating bin repository")
	return &binRepository{
		db:     db,
		logger: logger,
	}
}

func (r *binRepository) CreateBin(ctx context.Context, bin models.Bin) (models.Bin, error) {
	log := logger.FromContext(ctx)

	lat, lon, acc, geoAt := geoArgs(bin.GeoLocation)
	row := r.db.QueryRowContext(ctx, createBin, bin.ID, bin.BinID, bin.Type, bin.Location, bin.CurrentLevel,
		nullInt(bin.OwnerID), lat, lon, acc, geoAt)

	if err := row.Scan(&bin.CreatedAt, &bin.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*binRepository.CreateBin").Msg("error inserting bin")
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Bin{}, ErrBinAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Bin{}, fmt.Errorf("%w: %s", ErrReferencedRowMissing, constraintName(err))
		default:
			return models.Bin{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return bin, nil
}

func (r *binRepository) FindBinByBinID(ctx context.Context, binID string) (models.Bin, error) {
	log := logger.FromContext(ctx)

	bin, err := scanBin(r.db.QueryRowContext(ctx, findBinByBinID, binID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bin{}, ErrBinNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*binRepository.FindBinByBinID").Msg("error finding bin")
		return models.Bin{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return bin, nil
}

func (r *binRepository) ListBins(ctx context.Context, req models.SyncRequest) ([]models.Bin, error) {
	query, args, err := buildSelectBinsQuery(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*binRepository.ListBins", query, args)
}

func (r *binRepository) BulkUpdateBins(ctx context.Context, update models.BulkBinUpdate) ([]models.Bin, error) {
	query, args, err := buildBulkUpdateBinsQuery(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*binRepository.BulkUpdateBins", query, args)
}

func (r *binRepository) query(ctx context.Context, fn, query string, args []any) ([]models.Bin, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bins := make([]models.Bin, 0)
	for rows.Next() {
		bin, err := scanBin(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning bin")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		bins = append(bins, bin)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return bins, nil
}
