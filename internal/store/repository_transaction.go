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

type transactionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTransactionRepository constructs a [TransactionRepository] backed by PostgreSQL.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	logger.Debug().Msg("creating transaction repository")
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransaction inserts a transaction. A clash on client_reference is reported
// as [ErrDuplicateClientReference].
func (r *transactionRepository) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTransaction, t.ID, t.UserID, t.Type, t.Amount, t.Status,
		nullString(t.ClientReference))
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*transactionRepository.CreateTransaction").Msg("error inserting transaction")
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Transaction{}, ErrDuplicateClientReference
		case pgerrcode.ForeignKeyViolation:
			return models.Transaction{}, fmt.Errorf("%w: %s", ErrReferencedRowMissing, constraintName(err))
		default:
			return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return t, nil
}

func (r *transactionRepository) FindTransactionByClientReference(ctx context.Context, ref string) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindTransactionByReferenceQuery(ref)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*transactionRepository.FindTransactionByClientReference").Msg("error finding transaction")
		return models.Transaction{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return t, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, req models.SyncRequest) ([]models.Transaction, error) {
	query, args, err := buildSelectTransactionsQuery(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*transactionRepository.ListTransactions", query, args)
}

func (r *transactionRepository) BulkUpdateTransactions(ctx context.Context, update models.BulkTransactionUpdate) ([]models.Transaction, error) {
	query, args, err := buildBulkUpdateTransactionsQuery(update)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.query(ctx, "*transactionRepository.BulkUpdateTransactions", query, args)
}

func (r *transactionRepository) query(ctx context.Context, fn, query string, args []any) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning transaction")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return transactions, nil
}
