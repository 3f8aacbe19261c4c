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

type pickupRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPickupRepository constructs a [PickupRepository] backed by PostgreSQL.
func NewPickupRepository(db *DB, logger *logger.Logger) PickupRepository {
	logger.Debug().Msg("creating pickup repository")
	return &pickupRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePickup inserts a pickup. A clash on client_reference is reported
// as [ErrDuplicateClientReference].
func (r *pickupRepository) CreatePickup(ctx context.Context, p models.Pickup) (models.Pickup, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createPickup, p.ID, p.UserID, p.WasteType, p.Description, p.Status,
		nullTime(p.ScheduledDate), nullString(p.ClientReference))
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*pickupRepository.CreatePickup").Msg("error inserting pickup")
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Pickup{}, ErrDuplicateClientReference
		case pgerrcode.ForeignKeyViolation:
			return models.Pickup{}, fmt.Errorf("%w: %s", ErrReferencedRowMissing, constraintName(err))
		default:
			return models.Pickup{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return p, nil
}

func (r *pickupRepository) FindPickupByClientReference(ctx context.Context, ref string) (models.Pickup, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindPickupByReferenceQuery(ref)
	if err != nil {
		return models.Pickup{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	p, err := scanPickup(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pickup{}, ErrPickupNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*pickupRepository.FindPickupByClientReference").Msg("error finding pickup")
		return models.Pickup{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return p, nil
}

func (r *pickupRepository) ListPickups(ctx context.Context, req models.SyncRequest) ([]models.Pickup, error) {
	query, args, err := buildSelectPickupsQuery(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*pickupRepository.ListPickups", query, args)
}

func (r *pickupRepository) BulkUpdatePickups(ctx context.Context, update models.BulkPickupUpdate) ([]models.Pickup, error) {
	query, args, err := buildBulkUpdatePickupsQuery(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*pickupRepository.BulkUpdatePickups", query, args)
}

func (r *pickupRepository) query(ctx context.Context, fn, query string, args []any) ([]models.Pickup, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	pickups := make([]models.Pickup, 0)
	for rows.Next() {
		p, err := scanPickup(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning pickup")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		pickups = append(pickups, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pickups, nil
}
