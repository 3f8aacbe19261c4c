package service

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/mock"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeSession is safe for use from the sync job goroutine.
type fakeSession struct {
	authenticated atomic.Bool
	expired       atomic.Int64
	reloads       atomic.Int64

	mu      sync.Mutex
	onLogin []func(context.Context)
}

func signedIn() *fakeSession {
	s := &fakeSession{}
	s.authenticated.Store(true)
	return s
}

func (s *fakeSession) Authenticated() bool { return s.authenticated.Load() }

func (s *fakeSession) Expire(context.Context) {
	s.expired.Add(1)
	s.authenticated.Store(false)
}

func (s *fakeSession) Reload(context.Context) error {
	s.reloads.Add(1)
	return nil
}

func (s *fakeSession) OnLogin(fn func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogin = append(s.onLogin, fn)
}

// login signs in and runs the login hooks, as another process logging in
// would once Reload picked it up.
func (s *fakeSession) login(ctx context.Context) {
	s.authenticated.Store(true)
	s.mu.Lock()
	hooks := append(([]func(context.Context))(nil), s.onLogin...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

type engineFixture struct {
	kv      *memoryKV
	server  *mock.MockServerAdapter
	monitor ConnectivityMonitor
	session *fakeSession
	engine  SyncEngine
}

func newEngineFixture(t *testing.T) *engineFixture {
	ctrl := gomock.NewController(t)
	f := &engineFixture{
		kv:      newMemoryKV(),
		server:  mock.NewMockServerAdapter(ctrl),
		monitor: NewConnectivityMonitor(nil, logger.Nop()),
		session: signedIn(),
	}
	f.monitor.Report(true)
	f.engine = NewSyncEngine(f.kv, f.server, f.monitor, f.session, logger.Nop())
	return f
}

// gatedFetcher hands every GetUpdates call to the test and blocks until the
// test answers it.
type gatedFetcher struct {
	calls chan fetchCall
}

type fetchCall struct {
	since *time.Time
	reply chan models.SyncUpdates
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{calls: make(chan fetchCall)}
}

func (g *gatedFetcher) GetUpdates(ctx context.Context, since *time.Time) (models.SyncUpdates, error) {
	call := fetchCall{since: since, reply: make(chan models.SyncUpdates)}
	select {
	case g.calls <- call:
	case <-ctx.Done():
		return models.SyncUpdates{}, ctx.Err()
	}
	return <-call.reply, nil
}

func (g *gatedFetcher) next(t *testing.T) fetchCall {
	t.Helper()
	select {
	case call := <-g.calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("no GetUpdates call")
		return fetchCall{}
	}
}

func newGatedEngine(t *testing.T) (SyncEngine, *gatedFetcher, *memoryKV, *fakeSession) {
	t.Helper()
	kv, fetcher, session := newMemoryKV(), newGatedFetcher(), signedIn()
	monitor := NewConnectivityMonitor(nil, logger.Nop())
	monitor.Report(true)
	return NewSyncEngine(kv, fetcher, monitor, session, logger.Nop()), fetcher, kv, session
}

func refreshAsync(ctx context.Context, engine SyncEngine) <-chan error {
	done := make(chan error, 1)
	go func() { done <- engine.Refresh(ctx) }()
	return done
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestSyncEngine_Refresh_BootstrapThenDelta(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	first := at(10)
	gomock.InOrder(
		f.server.EXPECT().GetUpdates(gomock.Any(), (*time.Time)(nil)).Return(models.SyncUpdates{
			ServerTime: first,
			Bins:       []models.Record{rec(t, `{"id":"b1","currentLevel":40,"updatedAt":"2026-03-14T09:00:00Z"}`)},
		}, nil),
		f.server.EXPECT().GetUpdates(gomock.Any(), &first).Return(models.SyncUpdates{
			ServerTime: at(11),
			Bins:       []models.Record{rec(t, `{"id":"b1","currentLevel":0,"updatedAt":"2026-03-14T10:30:00Z"}`)},
		}, nil),
	)

	require.NoError(t, f.engine.Refresh(ctx))
	require.NoError(t, f.engine.Refresh(ctx))

	snap := f.engine.Snapshot()
	require.NotNil(t, snap.LastSync)
	assert.Equal(t, at(11), *snap.LastSync)
	require.Len(t, snap.Cache[models.EntityBin], 1)
	level, _ := snap.Cache[models.EntityBin][0].Scalar("currentLevel")
	assert.Equal(t, "0", level)
	assert.NoError(t, snap.LastError)

	var state models.CacheState
	require.NoError(t, json.Unmarshal([]byte(f.kv.raw("sync:cache")), &state))
	assert.Equal(t, at(11), *state.LastSync, "cache and watermark are written together")
	assert.Len(t, state.Cache[models.EntityBin], 1)
}

func TestSyncEngine_Refresh_WatermarkNeverRegresses(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	late := at(12)
	gomock.InOrder(
		f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{ServerTime: late}, nil),
		f.server.EXPECT().GetUpdates(gomock.Any(), &late).Return(models.SyncUpdates{ServerTime: at(9)}, nil),
		f.server.EXPECT().GetUpdates(gomock.Any(), &late).Return(models.SyncUpdates{}, nil),
	)

	require.NoError(t, f.engine.Refresh(ctx))
	require.NoError(t, f.engine.Refresh(ctx))
	require.NoError(t, f.engine.Refresh(ctx))

	assert.Equal(t, late, *f.engine.Snapshot().LastSync)
}

func TestSyncEngine_Refresh_OverlappingLaterFirst(t *testing.T) {
	engine, fetcher, kv, _ := newGatedEngine(t)
	ctx := context.Background()

	older := refreshAsync(ctx, engine)
	first := fetcher.next(t)
	newer := refreshAsync(ctx, engine)
	second := fetcher.next(t)
	assert.Nil(t, first.since)
	assert.Nil(t, second.since, "both started before either finished")

	second.reply <- models.SyncUpdates{
		ServerTime: at(12),
		Bins:       []models.Record{rec(t, `{"id":"b1","currentLevel":90,"updatedAt":"2026-03-14T11:30:00Z"}`)},
	}
	require.NoError(t, <-newer)

	first.reply <- models.SyncUpdates{
		ServerTime: at(11),
		Bins: []models.Record{
			rec(t, `{"id":"b1","currentLevel":40,"updatedAt":"2026-03-14T10:30:00Z"}`),
			rec(t, `{"id":"b2","currentLevel":10,"updatedAt":"2026-03-14T10:45:00Z"}`),
		},
	}
	require.NoError(t, <-older)

	snap := engine.Snapshot()
	require.NotNil(t, snap.LastSync)
	assert.Equal(t, at(12), *snap.LastSync, "the slower, older response does not move the watermark back")
	require.Len(t, snap.Cache[models.EntityBin], 2)
	level, _ := snap.Cache[models.EntityBin][0].Scalar("currentLevel")
	assert.Equal(t, "90", level, "the newer record wins")

	var state models.CacheState
	require.NoError(t, json.Unmarshal([]byte(kv.raw("sync:cache")), &state))
	assert.Equal(t, at(12), *state.LastSync)
}

func TestSyncEngine_Refresh_LogoutDuringFetchDropsDelta(t *testing.T) {
	engine, fetcher, kv, _ := newGatedEngine(t)
	ctx := context.Background()

	done := refreshAsync(ctx, engine)
	call := fetcher.next(t)

	require.NoError(t, engine.Clear(ctx))
	call.reply <- models.SyncUpdates{
		ServerTime: at(10),
		Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
	}
	require.NoError(t, <-done)

	snap := engine.Snapshot()
	assert.Empty(t, snap.Cache[models.EntityBin])
	assert.Nil(t, snap.LastSync)
	assert.Empty(t, kv.raw("sync:cache"), "the previous account's data is not written back")
}

func TestSyncEngine_Refresh_SignedOutDuringFetchDropsDelta(t *testing.T) {
	engine, fetcher, kv, session := newGatedEngine(t)
	ctx := context.Background()

	done := refreshAsync(ctx, engine)
	call := fetcher.next(t)

	session.authenticated.Store(false)
	call.reply <- models.SyncUpdates{ServerTime: at(10), Bins: []models.Record{rec(t, `{"id":"b1"}`)}}
	require.NoError(t, <-done)

	assert.Nil(t, engine.Snapshot().LastSync)
	assert.Empty(t, kv.raw("sync:cache"))
}

func TestSyncEngine_Refresh_ClearedByAnotherProcess(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
			ServerTime: at(10),
			Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
		}, nil),
		f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
			ServerTime: at(11),
			Bins:       []models.Record{rec(t, `{"id":"b2"}`)},
		}, nil),
	)
	require.NoError(t, f.engine.Refresh(ctx))

	require.NoError(t, f.kv.Delete(ctx, "sync:cache"))
	require.NoError(t, f.engine.Refresh(ctx))

	snap := f.engine.Snapshot()
	assert.Nil(t, snap.LastSync)
	assert.Empty(t, snap.Cache[models.EntityBin])
	assert.Empty(t, f.kv.raw("sync:cache"))
}

func TestSyncEngine_Refresh_MergesIntoStoredCache(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	f.kv.set("sync:cache", `{"cache":{"pickups":[{"id":"p1","updatedAt":"2026-03-14T11:00:00Z"}]},"lastSync":"2026-03-14T11:00:00.000Z"}`)
	f.server.EXPECT().GetUpdates(gomock.Any(), (*time.Time)(nil)).Return(models.SyncUpdates{
		ServerTime: at(10),
		Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
	}, nil)

	require.NoError(t, f.engine.Refresh(ctx))

	snap := f.engine.Snapshot()
	assert.Len(t, snap.Cache[models.EntityPickup], 1, "another process's refresh is kept")
	assert.Len(t, snap.Cache[models.EntityBin], 1)
	assert.Equal(t, at(11), snap.LastSync.UTC())
}

func TestSyncEngine_Refresh_SkipsWhenOfflineOrSignedOut(t *testing.T) {
	f := newEngineFixture(t)
	f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Times(0)

	f.monitor.Report(false)
	require.NoError(t, f.engine.Refresh(context.Background()))

	f.monitor.Report(true)
	f.session.authenticated.Store(false)
	require.NoError(t, f.engine.Refresh(context.Background()))
}

func TestSyncEngine_Refresh_FailureKeepsState(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
			ServerTime: at(10),
			Pickups:    []models.Record{rec(t, `{"id":"p1"}`)},
		}, nil),
		f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{}, adapter.NewStatusError(500, "boom")),
	)

	require.NoError(t, f.engine.Refresh(ctx))
	err := f.engine.Refresh(ctx)

	require.ErrorIs(t, err, adapter.ErrServerError)
	snap := f.engine.Snapshot()
	assert.ErrorIs(t, snap.LastError, adapter.ErrServerError)
	assert.Equal(t, at(10), *snap.LastSync)
	assert.Len(t, snap.Cache[models.EntityPickup], 1)
	assert.Zero(t, f.session.expired.Load())
}

func TestSyncEngine_Refresh_UnauthorizedExpiresSession(t *testing.T) {
	f := newEngineFixture(t)
	f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{}, adapter.NewStatusError(401, "expired"))

	err := f.engine.Refresh(context.Background())

	require.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, int64(1), f.session.expired.Load())
}

func TestSyncEngine_Refresh_PersistFailureKeepsMemoryState(t *testing.T) {
	f := newEngineFixture(t)
	f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
		ServerTime: at(10),
		Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
	}, nil)
	f.kv.failPut = errStorage

	err := f.engine.Refresh(context.Background())

	require.ErrorIs(t, err, errStorage)
	snap := f.engine.Snapshot()
	assert.Nil(t, snap.LastSync, "watermark only moves with a persisted cache")
	assert.Empty(t, snap.Cache[models.EntityBin])
}

// ── Load / Clear ─────────────────────────────────────────────────────────────

func TestSyncEngine_Load(t *testing.T) {
	t.Run("restores cache and watermark", func(t *testing.T) {
		f := newEngineFixture(t)
		f.kv.set("sync:cache", `{"cache":{"bins":[{"id":"b1"}]},"lastSync":"2026-03-14T10:00:00.000Z"}`)

		require.NoError(t, f.engine.Load(context.Background()))

		snap := f.engine.Snapshot()
		assert.Len(t, snap.Cache[models.EntityBin], 1)
		assert.NotNil(t, snap.Cache[models.EntityCollection])
		assert.Equal(t, at(10), snap.LastSync.UTC())
	})

	t.Run("corrupt blob starts empty", func(t *testing.T) {
		f := newEngineFixture(t)
		f.kv.set("sync:cache", `{"cache":`)

		require.NoError(t, f.engine.Load(context.Background()))

		snap := f.engine.Snapshot()
		assert.Nil(t, snap.LastSync)
		assert.Empty(t, snap.Cache[models.EntityBin])
	})

	t.Run("nothing stored", func(t *testing.T) {
		f := newEngineFixture(t)

		require.NoError(t, f.engine.Load(context.Background()))
		assert.Nil(t, f.engine.Snapshot().LastSync)
	})
}

func TestSyncEngine_Clear(t *testing.T) {
	f := newEngineFixture(t)
	f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
		ServerTime: at(10),
		Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
	}, nil)
	require.NoError(t, f.engine.Refresh(context.Background()))

	require.NoError(t, f.engine.Clear(context.Background()))

	snap := f.engine.Snapshot()
	assert.Nil(t, snap.LastSync)
	assert.Empty(t, snap.Cache[models.EntityBin])
	assert.Empty(t, f.kv.raw("sync:cache"))
}

func TestSyncEngine_Snapshot_IsACopy(t *testing.T) {
	f := newEngineFixture(t)
	f.server.EXPECT().GetUpdates(gomock.Any(), gomock.Any()).Return(models.SyncUpdates{
		ServerTime: at(10),
		Bins:       []models.Record{rec(t, `{"id":"b1"}`)},
	}, nil)
	require.NoError(t, f.engine.Refresh(context.Background()))

	snap := f.engine.Snapshot()
	snap.Cache[models.EntityBin] = nil
	*snap.LastSync = at(1)

	again := f.engine.Snapshot()
	assert.Len(t, again.Cache[models.EntityBin], 1)
	assert.Equal(t, at(10), *again.LastSync)
	assert.False(t, again.Syncing)
}
