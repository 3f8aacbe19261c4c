package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
	"github.com/MKhiriev/go-waste-sync/models"
)

type transactionService struct {
	repo      store.TransactionRepository
	ledger    *idempotencyLedger[models.Transaction]
	validator validators.Validator
	ids       IDGenerator
	logger    *logger.Logger
}

func NewTransactionService(repo store.TransactionRepository, validator validators.Validator, ids IDGenerator, logger *logger.Logger) TransactionService {
	return &transactionService{
		repo:      repo,
		ledger:    newIdempotencyLedger("transaction", repo.FindTransactionByClientReference, store.ErrTransactionNotFound),
		validator: validator,
		ids:       ids,
		logger:    logger,
	}
}

// Pay records a mock payment; it settles immediately.
func (s *transactionService) Pay(ctx context.Context, req models.PayRequest) (models.Transaction, bool, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Transaction{}, false, invalid(err)
	}

	tx, duplicate, err := s.ledger.Write(ctx, req.ClientReference, func(ctx context.Context) (models.Transaction, error) {
		return s.repo.CreateTransaction(ctx, models.Transaction{
			ID:              s.ids.Generate(),
			UserID:          req.UserID,
			Type:            req.Type,
			Amount:          req.Amount,
			Status:          models.TransactionPaid,
			ClientReference: req.ClientReference,
		})
	})
	if err != nil {
		log.Err(err).Str("func", "*transactionService.Pay").Int64("user_id", req.UserID).
			Str("client_reference", req.ClientReference).Msg("payment failed")
		return models.Transaction{}, false, unavailableIfRetryable(store.NewPostgresErrorClassifier(), err)
	}

	log.Info().Str("func", "*transactionService.Pay").Str("transaction_id", tx.ID).
		Str("client_reference", req.ClientReference).Bool("duplicate", duplicate).Msg("payment stored")
	return tx, duplicate, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, req models.SyncRequest) ([]models.Transaction, error) {
	txs, err := s.repo.ListTransactions(ctx, models.SyncRequest{UserID: req.UserID, Role: req.Role})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return txs, nil
}

func (s *transactionService) BulkUpdate(ctx context.Context, update models.BulkTransactionUpdate) (models.BulkResult[models.Transaction], error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.BulkResult[models.Transaction]{}, invalid(err)
	}

	updated, err := s.repo.BulkUpdateTransactions(ctx, update)
	if err != nil {
		return models.BulkResult[models.Transaction]{}, fmt.Errorf("bulk transaction update: %w", err)
	}

	return models.BulkResult[models.Transaction]{ModifiedCount: len(updated), Updated: updated}, nil
}
