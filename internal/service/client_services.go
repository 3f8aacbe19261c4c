package service

import (
	"context"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
)

type ClientServices struct {
	Monitor     ConnectivityMonitor
	AuthService ClientAuthService
	SyncEngine  SyncEngine
	Queues      map[models.QueueArea]MutationQueue
	Reminders   ReminderService
	SyncJob     ClientSyncJob
}

// NewClientServices wires the offline stack. monitor must be the reporter the
// server adapter was built with.
func NewClientServices(kv store.KeyValueStore, server adapter.ServerAdapter, monitor ConnectivityMonitor,
	cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	auth := NewClientAuthService(kv, server, logger)
	engine := NewSyncEngine(kv, server, monitor, auth, logger)
	policy := NewBackoffRetryPolicy(cfg.QueueBaseBackoff, cfg.QueueMaxBackoff, cfg.QueueMaxAttempts)

	auth.OnLogout(func(ctx context.Context) {
		if err := engine.Clear(ctx); err != nil {
			logger.Err(err).Str("func", "NewClientServices").Msg("clearing sync cache on logout failed")
		}
	})

	hooks := QueueHooks{
		OnFlushed: func(ctx context.Context) {
			_ = engine.Refresh(ctx)
		},
		OnUnauthorized: auth.Expire,
	}

	queues := make(map[models.QueueArea]MutationQueue, len(models.QueueAreas))
	ordered := make([]MutationQueue, 0, len(models.QueueAreas))
	for _, area := range models.QueueAreas {
		q := NewMutationQueue(area, kv, server, monitor, policy, hooks, logger)
		queues[area] = q
		ordered = append(ordered, q)
	}

	reminders := NewReminderService(kv, NewLogNotifier(logger.WithComponent("notifier")), nil, logger)

	return &ClientServices{
		Monitor:     monitor,
		AuthService: auth,
		SyncEngine:  engine,
		Queues:      queues,
		Reminders:   reminders,
		SyncJob:     NewClientSyncJob(engine, ordered, monitor, auth, reminders, logger),
	}
}

// Queue returns the queue of area or nil.
func (s *ClientServices) Queue(area models.QueueArea) MutationQueue {
	return s.Queues[area]
}
