package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
)

// DefaultSyncInterval is the periodic refresh interval while online.
const DefaultSyncInterval = 15 * time.Second

// SessionWatcher is the session as the sync job sees it.
type SessionWatcher interface {
	SessionState
	Reload(ctx context.Context) error
	OnLogin(fn func(ctx context.Context))
}

type clientSyncJob struct {
	engine    SyncEngine
	queues    []MutationQueue
	monitor   ConnectivityMonitor
	session   SessionWatcher
	reminders ReminderService

	// loginCh is signalled by every login, also while the job is stopped.
	loginCh chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a job that keeps the engine fresh and the queues
// drained. reminders may be nil. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine, queues []MutationQueue, monitor ConnectivityMonitor, session SessionWatcher,
	reminders ReminderService, logger *logger.Logger) ClientSyncJob {
	j := &clientSyncJob{
		engine:    engine,
		queues:    queues,
		monitor:   monitor,
		session:   session,
		reminders: reminders,
		loginCh:   make(chan struct{}, 1),
		logger:    logger.WithComponent("sync-job"),
	}
	session.OnLogin(func(context.Context) {
		select {
		case j.loginCh <- struct{}{}:
		default:
		}
	})
	return j
}

// Start refreshes at once, then every interval while online and signed in.
// Every tick first re-reads the stored session, so a login or logout made by
// another process is followed. An online transition or a login flushes
// every queue and refreshes. Each queue's Run loop is started alongside.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1 + len(j.queues))
	j.mu.Unlock()

	onlineCh := make(chan struct{}, 1)
	unsubscribe := j.monitor.Subscribe(func(from, to models.ConnectivityState) {
		if wentOnline(from, to) {
			select {
			case onlineCh <- struct{}{}:
			default:
			}
		}
	})

	for _, q := range j.queues {
		go func(q MutationQueue) {
			defer j.wg.Done()
			q.Run(jobCtx)
		}(q)
	}

	go func() {
		defer j.wg.Done()
		defer unsubscribe()

		t := time.NewTicker(interval)
		defer t.Stop()

		j.refresh(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.reload(jobCtx)
				j.refresh(jobCtx)
			case <-onlineCh:
				j.flushAll(jobCtx)
				j.refresh(jobCtx)
			case <-j.loginCh:
				j.flushAll(jobCtx)
				j.refresh(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until every goroutine has exited. Safe to
// call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) reload(ctx context.Context) {
	if err := j.session.Reload(ctx); err != nil {
		j.logger.Warn().Err(err).Str("func", "*clientSyncJob.reload").Msg("re-reading session failed")
	}
}

func (j *clientSyncJob) flushAll(ctx context.Context) {
	for _, q := range j.queues {
		report := q.Flush(ctx)
		if report.Attempted > 0 {
			j.logger.Info().Str("func", "*clientSyncJob.flushAll").Str("area", string(report.Area)).
				Int("submitted", report.Submitted).Int("duplicates", report.Duplicates).
				Int("failed", report.Failed).Int("dead_lettered", report.DeadLettered).Msg("queue flushed")
		}
	}
}

// refresh errors are retained by the engine and retried on the next tick.
func (j *clientSyncJob) refresh(ctx context.Context) {
	if !j.monitor.Online() || !j.session.Authenticated() {
		return
	}
	if err := j.engine.Refresh(ctx); err != nil {
		return
	}
	if j.reminders == nil {
		return
	}
	if _, err := j.reminders.Check(ctx, j.engine.Snapshot().Cache); err != nil {
		j.logger.Err(err).Str("func", "*clientSyncJob.refresh").Msg("reminder check failed")
	}
}
