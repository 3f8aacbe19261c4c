package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
	"github.com/MKhiriev/go-waste-sync/models"
)

type binService struct {
	repo      store.BinRepository
	validator validators.Validator
	ids       IDGenerator
	logger    *logger.Logger
}

func NewBinService(repo store.BinRepository, validator validators.Validator, ids IDGenerator, logger *logger.Logger) BinService {
	return &binService{repo: repo, validator: validator, ids: ids, logger: logger}
}

func (s *binService) CreateBin(ctx context.Context, req models.CreateBinRequest) (models.Bin, error) {
	if req.Type == "" {
		req.Type = models.BinTypeGeneral
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.Bin{}, invalid(err)
	}

	bin, err := s.repo.CreateBin(ctx, models.Bin{
		ID:           s.ids.Generate(),
		BinID:        req.BinID,
		Type:         req.Type,
		Location:     req.Location,
		CurrentLevel: req.CurrentLevel,
		OwnerID:      req.OwnerID,
		GeoLocation:  req.GeoLocation,
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*binService.CreateBin").Str("bin_id", req.BinID).Msg("bin creation failed")
		return models.Bin{}, fmt.Errorf("bin creation failed: %w", err)
	}

	return bin, nil
}

func (s *binService) ListBins(ctx context.Context, req models.SyncRequest) ([]models.Bin, error) {
	bins, err := s.repo.ListBins(ctx, models.SyncRequest{UserID: req.UserID, Role: req.Role})
	if err != nil {
		return nil, fmt.Errorf("listing bins: %w", err)
	}
	return bins, nil
}

func (s *binService) BulkUpdate(ctx context.Context, update models.BulkBinUpdate) (models.BulkResult[models.Bin], error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.BulkResult[models.Bin]{}, invalid(err)
	}

	updated, err := s.repo.BulkUpdateBins(ctx, update)
	if err != nil {
		return models.BulkResult[models.Bin]{}, fmt.Errorf("bulk bin update: %w", err)
	}

	return models.BulkResult[models.Bin]{ModifiedCount: len(updated), Updated: updated}, nil
}
