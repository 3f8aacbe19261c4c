package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
	"github.com/MKhiriev/go-waste-sync/models"
)

type pickupService struct {
	repo      store.PickupRepository
	ledger    *idempotencyLedger[models.Pickup]
	validator validators.Validator
	ids       IDGenerator
	logger    *logger.Logger
}

func NewPickupService(repo store.PickupRepository, validator validators.Validator, ids IDGenerator, logger *logger.Logger) PickupService {
	return &pickupService{
		repo:      repo,
		ledger:    newIdempotencyLedger("pickup", repo.FindPickupByClientReference, store.ErrPickupNotFound),
		validator: validator,
		ids:       ids,
		logger:    logger,
	}
}

func (s *pickupService) CreatePickup(ctx context.Context, req models.CreatePickupRequest) (models.Pickup, bool, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Pickup{}, false, invalid(err)
	}

	pickup, duplicate, err := s.ledger.Write(ctx, req.ClientReference, func(ctx context.Context) (models.Pickup, error) {
		return s.repo.CreatePickup(ctx, models.Pickup{
			ID:              s.ids.Generate(),
			UserID:          req.UserID,
			WasteType:       req.WasteType,
			Description:     req.Description,
			Status:          models.PickupPending,
			ScheduledDate:   req.ScheduledDate,
			ClientReference: req.ClientReference,
		})
	})
	if err != nil {
		log.Err(err).Str("func", "*pickupService.CreatePickup").Int64("user_id", req.UserID).
			Str("client_reference", req.ClientReference).Msg("pickup creation failed")
		return models.Pickup{}, false, unavailableIfRetryable(store.NewPostgresErrorClassifier(), err)
	}

	log.Info().Str("func", "*pickupService.CreatePickup").Str("pickup_id", pickup.ID).
		Str("client_reference", req.ClientReference).Bool("duplicate", duplicate).Msg("pickup stored")
	return pickup, duplicate, nil
}

func (s *pickupService) ListPickups(ctx context.Context, req models.SyncRequest) ([]models.Pickup, error) {
	pickups, err := s.repo.ListPickups(ctx, models.SyncRequest{UserID: req.UserID, Role: req.Role})
	if err != nil {
		return nil, fmt.Errorf("listing pickups: %w", err)
	}
	return pickups, nil
}

func (s *pickupService) BulkUpdate(ctx context.Context, update models.BulkPickupUpdate) (models.BulkResult[models.Pickup], error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.BulkResult[models.Pickup]{}, invalid(err)
	}

	updated, err := s.repo.BulkUpdatePickups(ctx, update)
	if err != nil {
		return models.BulkResult[models.Pickup]{}, fmt.Errorf("bulk pickup update: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "*pickupService.BulkUpdate").
		Int("requested", len(update.IDs)).Int("modified", len(updated)).Msg("pickups updated")
	return models.BulkResult[models.Pickup]{ModifiedCount: len(updated), Updated: updated}, nil
}
