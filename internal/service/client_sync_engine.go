package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

const syncCacheKey = "sync:cache"

// errCacheCleared means another process deleted the cache this one had
// persisted, which only a logout does.
var errCacheCleared = errors.New("sync cache cleared elsewhere")

// UpdatesFetcher reads the delta feed. The server adapter satisfies it.
type UpdatesFetcher interface {
	GetUpdates(ctx context.Context, since *time.Time) (models.SyncUpdates, error)
}

// SessionState tells the engine whether it may talk to the server.
type SessionState interface {
	Authenticated() bool
	Expire(ctx context.Context)
}

type syncEngine struct {
	kv      store.KeyValueStore
	server  UpdatesFetcher
	monitor ConnectivityMonitor
	session SessionState

	// mu guards the fields below and serializes persistence so that the
	// stored blob never goes back in time.
	mu        sync.Mutex
	cache     models.SyncCache
	lastSync  *time.Time
	lastError error
	// generation is bumped by Clear. A delta fetched under an older
	// generation belongs to the previous session and is dropped.
	generation uint64

	inFlight atomic.Int32

	logger *logger.Logger
}

func NewSyncEngine(kv store.KeyValueStore, server UpdatesFetcher, monitor ConnectivityMonitor, session SessionState, logger *logger.Logger) SyncEngine {
	return &syncEngine{
		kv:      kv,
		server:  server,
		monitor: monitor,
		session: session,
		cache:   emptyCache(),
		logger:  logger.WithComponent("sync"),
	}
}

func emptyCache() models.SyncCache {
	cache := make(models.SyncCache, len(models.EntityTypes))
	for _, t := range models.EntityTypes {
		cache[t] = []models.Record{}
	}
	return cache
}

// Load treats a corrupt blob as an empty cache with no watermark.
func (e *syncEngine) Load(ctx context.Context) error {
	var state models.CacheState
	found, err := store.GetJSON(ctx, e.kv, syncCacheKey, &state)
	if err != nil && !errors.Is(err, store.ErrCorruptDocument) {
		return fmt.Errorf("loading sync cache: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.logger.Err(err).Str("func", "*syncEngine.Load").Msg("discarding corrupt sync cache")
		e.cache, e.lastSync = emptyCache(), nil
		return nil
	}
	if !found {
		e.cache, e.lastSync = emptyCache(), nil
		return nil
	}

	e.cache, e.lastSync = cacheFrom(state), state.LastSync
	return nil
}

func cacheFrom(state models.CacheState) models.SyncCache {
	cache := emptyCache()
	for t, list := range state.Cache {
		if list != nil {
			cache[t] = list
		}
	}
	return cache
}

func (e *syncEngine) Refresh(ctx context.Context) error {
	if !e.monitor.Online() || !e.session.Authenticated() {
		return nil
	}

	e.inFlight.Add(1)
	defer e.inFlight.Add(-1)

	e.mu.Lock()
	since, generation := e.lastSync, e.generation
	e.mu.Unlock()

	updates, err := e.server.GetUpdates(ctx, since)
	if err != nil {
		e.fail(err)
		if errors.Is(err, adapter.ErrUnauthorized) {
			e.session.Expire(ctx)
		}
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.generation != generation || !e.session.Authenticated() {
		e.logger.Debug().Str("func", "*syncEngine.Refresh").Msg("session ended during refresh, delta dropped")
		return nil
	}

	var (
		cache    models.SyncCache
		lastSync *time.Time
	)
	err = e.kv.Tx(ctx, func(kv store.KeyValueStore) error {
		base, watermark, err := e.stored(ctx, kv)
		if err != nil {
			return err
		}
		cache, lastSync = MergeUpdates(base, updates), watermark
		if serverTime := updates.ServerTime.UTC(); !serverTime.IsZero() && (lastSync == nil || serverTime.After(*lastSync)) {
			lastSync = &serverTime
		}
		return store.PutJSON(ctx, kv, syncCacheKey, models.CacheState{Cache: cache, LastSync: lastSync})
	})
	if errors.Is(err, errCacheCleared) {
		e.cache, e.lastSync, e.lastError = emptyCache(), nil, nil
		e.generation++
		e.logger.Info().Str("func", "*syncEngine.Refresh").Msg("sync cache was cleared by another process, delta dropped")
		return nil
	}
	if err != nil {
		e.lastError = err
		e.logger.Err(err).Str("func", "*syncEngine.Refresh").Msg("persisting sync cache failed")
		return err
	}

	e.cache, e.lastSync, e.lastError = cache, lastSync, nil

	e.logger.Debug().Str("func", "*syncEngine.Refresh").
		Int("bins", len(updates.Bins)).
		Int("pickups", len(updates.Pickups)).
		Int("transactions", len(updates.Transactions)).
		Int("collections", len(updates.Collections)).
		Msg("delta merged")
	return nil
}

// stored returns the cache to merge into: the persisted one, which another
// process may have advanced, or the in-memory one when nothing readable is
// stored yet. It must be called with e.mu held.
func (e *syncEngine) stored(ctx context.Context, kv store.KeyValueStore) (models.SyncCache, *time.Time, error) {
	var state models.CacheState
	found, err := store.GetJSON(ctx, kv, syncCacheKey, &state)
	switch {
	case errors.Is(err, store.ErrCorruptDocument):
		e.logger.Err(err).Str("func", "*syncEngine.stored").Msg("overwriting corrupt sync cache")
		return e.cache, e.lastSync, nil
	case err != nil:
		return nil, nil, fmt.Errorf("loading sync cache: %w", err)
	case !found && e.lastSync != nil:
		return nil, nil, errCacheCleared
	case !found:
		return e.cache, e.lastSync, nil
	}

	lastSync := state.LastSync
	if lastSync == nil || (e.lastSync != nil && e.lastSync.After(*lastSync)) {
		lastSync = e.lastSync
	}
	return cacheFrom(state), lastSync, nil
}

func (e *syncEngine) fail(err error) {
	e.mu.Lock()
	e.lastError = err
	e.mu.Unlock()
	e.logger.Warn().Err(err).Str("func", "*syncEngine.Refresh").Msg("refresh failed")
}

// Clear runs on logout so that the next account starts from a full bootstrap.
func (e *syncEngine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache, e.lastSync, e.lastError = emptyCache(), nil, nil
	e.generation++
	if err := e.kv.Delete(ctx, syncCacheKey); err != nil {
		return fmt.Errorf("deleting sync cache: %w", err)
	}
	return nil
}

func (e *syncEngine) Snapshot() models.SyncSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var lastSync *time.Time
	if e.lastSync != nil {
		t := *e.lastSync
		lastSync = &t
	}
	return models.SyncSnapshot{
		Cache:     e.cache.Clone(),
		LastSync:  lastSync,
		LastError: e.lastError,
		Syncing:   e.inFlight.Load() > 0,
	}
}
