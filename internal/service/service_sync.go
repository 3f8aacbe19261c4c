package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

// syncService is the concrete implementation of SyncService. It fans the
// four entity queries out concurrently and stamps the response after every
// query returned, so that serverTime never precedes the data it covers.
type syncService struct {
	bins         store.BinRepository
	pickups      store.PickupRepository
	transactions store.TransactionRepository
	collections  store.CollectionRepository

	classifier store.ErrorClassificator
	clock      Clock
	logger     *logger.Logger
}

// NewSyncService constructs a SyncService. A nil clock means time.Now.
func NewSyncService(storages *store.Storages, clock Clock, logger *logger.Logger) SyncService {
	if clock == nil {
		clock = time.Now
	}
	return &syncService{
		bins:         storages.BinRepository,
		pickups:      storages.PickupRepository,
		transactions: storages.TransactionRepository,
		collections:  storages.CollectionRepository,
		classifier:   store.NewPostgresErrorClassifier(),
		clock:        clock,
		logger:       logger,
	}
}

func (s *syncService) GetUpdates(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	queryCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		resp     models.SyncResponse
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(entity models.EntityType, err error) {
		errOnce.Do(func() {
			firstErr = fmt.Errorf("%w: %s: %w", ErrSyncQuery, entity, err)
			cancel()
		})
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		bins, err := s.bins.ListBins(queryCtx, req)
		if err != nil {
			fail(models.EntityBin, err)
			return
		}
		resp.Bins = bins
	}()
	go func() {
		defer wg.Done()
		pickups, err := s.pickups.ListPickups(queryCtx, req)
		if err != nil {
			fail(models.EntityPickup, err)
			return
		}
		resp.Pickups = pickups
	}()
	go func() {
		defer wg.Done()
		txs, err := s.transactions.ListTransactions(queryCtx, req)
		if err != nil {
			fail(models.EntityTransaction, err)
			return
		}
		resp.Transactions = txs
	}()
	go func() {
		defer wg.Done()
		// collections are not scoped by role
		records, err := s.collections.ListCollections(queryCtx, req.Since)
		if err != nil {
			fail(models.EntityCollection, err)
			return
		}
		resp.Collections = records
	}()
	wg.Wait()

	if firstErr != nil {
		log.Err(firstErr).Str("func", "*syncService.GetUpdates").Int64("user_id", req.UserID).Msg("delta query failed")
		return models.SyncResponse{}, unavailableIfRetryable(s.classifier, firstErr)
	}

	resp.ServerTime = s.clock().UTC().Truncate(time.Millisecond)
	resp.Since = req.Since
	normalizeSyncResponse(&resp)

	log.Debug().Str("func", "*syncService.GetUpdates").
		Int64("user_id", req.UserID).
		Int("bins", len(resp.Bins)).
		Int("pickups", len(resp.Pickups)).
		Int("transactions", len(resp.Transactions)).
		Int("collections", len(resp.Collections)).
		Msg("delta computed")

	return resp, nil
}

// lists are rendered as [] rather than null
func normalizeSyncResponse(resp *models.SyncResponse) {
	if resp.Bins == nil {
		resp.Bins = []models.Bin{}
	}
	if resp.Pickups == nil {
		resp.Pickups = []models.Pickup{}
	}
	if resp.Transactions == nil {
		resp.Transactions = []models.Transaction{}
	}
	if resp.Collections == nil {
		resp.Collections = []models.CollectionRecord{}
	}
}
