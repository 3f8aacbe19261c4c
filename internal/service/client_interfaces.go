package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ConnectivityMonitor tracks whether the server is reachable. Transitions are
// event driven: the transport reports what it observes and Probe runs once at
// startup.
type ConnectivityMonitor interface {
	// Report records a reachability signal. Repeating the current state is
	// not a transition.
	Report(online bool)

	// Probe pings the server once and reports the outcome.
	Probe(ctx context.Context, pinger adapter.Pinger) models.ConnectivityState

	State() models.ConnectivityState
	LastChanged() time.Time

	// Subscribe registers fn for every transition. Listeners run
	// synchronously, in subscription order.
	Subscribe(fn func(from, to models.ConnectivityState)) (unsubscribe func())
	Online() bool
}

// RetryPolicy decides what happens to a mutation whose submission failed.
type RetryPolicy interface {
	Classify(err error) models.Disposition
	// Backoff is the delay before the next attempt after attempts failures.
	Backoff(attempts int) time.Duration
	// MaxAttempts is the transient failure ceiling. 0 retries forever.
	MaxAttempts() int
}

// MutationQueue is a durable FIFO of writes waiting for the server.
type MutationQueue interface {
	Area() models.QueueArea

	// Enqueue persists payload before returning it as a pending mutation.
	Enqueue(ctx context.Context, payload models.Payload) (models.PendingMutation, error)

	// Flush submits due entries in order. Concurrent calls while a flush is
	// running return immediately with an empty report.
	Flush(ctx context.Context) models.FlushReport

	// Retry flushes ignoring backoff.
	Retry(ctx context.Context) models.FlushReport

	Pending(ctx context.Context) ([]models.PendingMutation, error)
	DeadLetters(ctx context.Context) ([]models.PendingMutation, error)

	// Requeue moves a dead letter back to the tail of the queue.
	Requeue(ctx context.Context, localID string) error

	// Run flushes on every enqueue signal until ctx is done.
	Run(ctx context.Context)
}

// SyncEngine mirrors server entities locally.
type SyncEngine interface {
	// Load restores the persisted cache and watermark.
	Load(ctx context.Context) error

	// Refresh pulls the delta after the watermark and merges it. It is a
	// no-op while offline or signed out.
	Refresh(ctx context.Context) error

	// Clear drops the cache and the watermark.
	Clear(ctx context.Context) error

	Snapshot() models.SyncSnapshot
}

// ClientSyncJob drives the engine and the queues from timers and
// connectivity transitions.
type ClientSyncJob interface {
	// Start launches the background loop. A previously running loop is
	// stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop blocks until the loop has exited.
	Stop()
}

// ClientAuthService owns the device session.
type ClientAuthService interface {
	Register(ctx context.Context, req models.AuthRequest) (models.Session, error)
	Login(ctx context.Context, req models.AuthRequest) (models.Session, error)

	// Restore loads the stored session into the transport.
	Restore(ctx context.Context) (models.Session, bool, error)

	// Reload re-reads the stored session to follow a login or logout made
	// by another process.
	Reload(ctx context.Context) error

	// Logout forgets the session and runs every logout hook.
	Logout(ctx context.Context) error

	// Expire is a forced logout after the server rejected the token.
	Expire(ctx context.Context)

	Authenticated() bool
	Current() (models.Session, bool)

	// OnLogin registers fn to run whenever a session becomes available:
	// Login, Register, Restore and a Reload that found a new session.
	OnLogin(fn func(ctx context.Context))

	// OnLogout registers fn to run on Logout and Expire.
	OnLogout(fn func(ctx context.Context))
}

// Notifier delivers reminders.
type Notifier interface {
	Notify(ctx context.Context, reminder models.Reminder) error
}

// ReminderService turns cached entities into one-time reminders.
type ReminderService interface {
	Check(ctx context.Context, cache models.SyncCache) ([]models.Reminder, error)
}
