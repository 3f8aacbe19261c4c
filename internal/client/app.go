package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

// ErrUnknownQueue is returned for an area without a queue.
var ErrUnknownQueue = errors.New("unknown queue")

// ErrNotSignedIn is returned by commands that need a session.
var ErrNotSignedIn = errors.New("not signed in")

// App is the client process: local storage, the server adapter and the
// offline services built over them.
type App struct {
	services *service.ClientServices
	server   adapter.Pinger
	closer   io.Closer

	syncInterval time.Duration
	logger       *logger.Logger
}

// NewApp opens the local database and wires the client services.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	monitor := service.NewConnectivityMonitor(nil, log.WithComponent("connectivity"))

	server, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, monitor, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	services := service.NewClientServices(storages.KeyValueStore, server, monitor, cfg.Workers, log)

	return newApp(services, server, storages, cfg.Workers.SyncInterval, log), nil
}

func newApp(services *service.ClientServices, server adapter.Pinger, closer io.Closer, syncInterval time.Duration, log *logger.Logger) *App {
	return &App{
		services:     services,
		server:       server,
		closer:       closer,
		syncInterval: syncInterval,
		logger:       log,
	}
}

// Start restores the stored session and cache, then probes the server once.
func (a *App) Start(ctx context.Context) error {
	if _, _, err := a.services.AuthService.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if err := a.services.SyncEngine.Load(ctx); err != nil {
		return fmt.Errorf("load sync cache: %w", err)
	}
	state := a.services.Monitor.Probe(ctx, a.server)
	a.logger.Debug().Str("func", "*App.Start").Str("connectivity", string(state)).Msg("client started")
	return nil
}

// Run keeps the sync job going until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	a.services.SyncJob.Start(ctx, a.syncInterval)
	defer a.services.SyncJob.Stop()

	<-ctx.Done()
	a.logger.Info().Str("func", "*App.Run").Msg("client stopping")
	return nil
}

// Close releases local storage.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) Login(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	return a.services.AuthService.Login(ctx, req)
}

func (a *App) Register(ctx context.Context, req models.AuthRequest) (models.Session, error) {
	return a.services.AuthService.Register(ctx, req)
}

// Logout clears the session and the cache. Queued mutations stay.
func (a *App) Logout(ctx context.Context) error {
	return a.services.AuthService.Logout(ctx)
}

// Sync flushes every queue and then refreshes the cache.
func (a *App) Sync(ctx context.Context) ([]models.FlushReport, error) {
	if !a.services.AuthService.Authenticated() {
		return nil, ErrNotSignedIn
	}

	reports := make([]models.FlushReport, 0, len(models.QueueAreas))
	for _, area := range models.QueueAreas {
		reports = append(reports, a.services.Queue(area).Flush(ctx))
	}

	if err := a.services.SyncEngine.Refresh(ctx); err != nil {
		return reports, err
	}
	if snap := a.services.SyncEngine.Snapshot(); snap.LastError != nil {
		return reports, snap.LastError
	}
	return reports, nil
}

// Status summarizes the device state.
func (a *App) Status(ctx context.Context) (models.ClientStatus, error) {
	snap := a.services.SyncEngine.Snapshot()
	status := models.ClientStatus{
		Connectivity: a.services.Monitor.State(),
		LastSync:     snap.LastSync,
		Cached:       make(map[models.EntityType]int, len(models.EntityTypes)),
		Pending:      make(map[models.QueueArea]int, len(models.QueueAreas)),
		DeadLetters:  make(map[models.QueueArea]int, len(models.QueueAreas)),
	}
	if snap.LastError != nil {
		status.LastError = snap.LastError.Error()
	}
	if session, ok := a.services.AuthService.Current(); ok {
		user := session.User
		status.User = &user
	}
	for _, t := range models.EntityTypes {
		status.Cached[t] = len(snap.Cache[t])
	}

	for _, area := range models.QueueAreas {
		q := a.services.Queue(area)
		pending, err := q.Pending(ctx)
		if err != nil {
			return models.ClientStatus{}, err
		}
		dead, err := q.DeadLetters(ctx)
		if err != nil {
			return models.ClientStatus{}, err
		}
		status.Pending[area] = len(pending)
		status.DeadLetters[area] = len(dead)
	}
	return status, nil
}

// Submit queues payload in area and, when the server is reachable, flushes
// that queue right away.
func (a *App) Submit(ctx context.Context, area models.QueueArea, payload models.Payload) (models.PendingMutation, *models.FlushReport, error) {
	q, err := a.queue(area)
	if err != nil {
		return models.PendingMutation{}, nil, err
	}

	entry, err := q.Enqueue(ctx, payload)
	if err != nil {
		return models.PendingMutation{}, nil, err
	}

	if !a.services.Monitor.Online() || !a.services.AuthService.Authenticated() {
		a.logger.Info().Str("func", "*App.Submit").Str("area", string(area)).Str("local_id", entry.LocalID).
			Msg("queued for later")
		return entry, nil, nil
	}

	report := q.Flush(ctx)
	return entry, &report, nil
}

// Pending lists queued mutations of area.
func (a *App) Pending(ctx context.Context, area models.QueueArea) ([]models.PendingMutation, error) {
	q, err := a.queue(area)
	if err != nil {
		return nil, err
	}
	return q.Pending(ctx)
}

// DeadLetters lists rejected mutations of area.
func (a *App) DeadLetters(ctx context.Context, area models.QueueArea) ([]models.PendingMutation, error) {
	q, err := a.queue(area)
	if err != nil {
		return nil, err
	}
	return q.DeadLetters(ctx)
}

// Retry flushes area ignoring backoff. An empty localID retries the queue;
// otherwise that dead letter is requeued first.
func (a *App) Retry(ctx context.Context, area models.QueueArea, localID string) (models.FlushReport, error) {
	q, err := a.queue(area)
	if err != nil {
		return models.FlushReport{}, err
	}
	if localID != "" {
		if err = q.Requeue(ctx, localID); err != nil {
			return models.FlushReport{}, err
		}
	}
	return q.Retry(ctx), nil
}

func (a *App) queue(area models.QueueArea) (service.MutationQueue, error) {
	q := a.services.Queue(area)
	if q == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueue, area)
	}
	return q, nil
}
