package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/handler"
	myGRPC "github.com/MKhiriev/go-waste-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/mock"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

// ── NewServer ────────────────────────────────────────────────────────────────

func TestNewServer_NoTransports(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_GRPCListenError(t *testing.T) {
	handlers := &handler.Handlers{GRPC: myGRPC.NewHandler(&service.Services{}, logger.Nop())}

	_, err := NewServer(handlers, nil, config.Server{GRPCAddress: "256.0.0.1:bad"}, logger.Nop())

	assert.Error(t, err)
}

// ── HTTP ─────────────────────────────────────────────────────────────────────

func TestNewHTTPServer_RequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	srv := newHTTPServer(slow, config.Server{HTTPAddress: ":0", RequestTimeout: 10 * time.Millisecond}, logger.Nop())

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sync/updates", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"message":"service temporarily unavailable"}`, rec.Body.String())
}

func TestNewHTTPServer_NoTimeout(t *testing.T) {
	router := http.NewServeMux()
	srv := newHTTPServer(router, config.Server{HTTPAddress: ":4000"}, logger.Nop())

	assert.Equal(t, ":4000", srv.server.Addr)
	assert.Same(t, router, srv.server.Handler)
}

// ── gRPC ─────────────────────────────────────────────────────────────────────

func TestGRPCServer_ServesHealthAndShutsDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthService(ctrl)
	health.EXPECT().Check(gomock.Any()).Return(nil).AnyTimes()

	h := myGRPC.NewHandler(&service.Services{HealthService: health}, logger.Nop())
	lis := bufconn.Listen(1 << 20)
	srv := newGRPCServerWithListener(h, lis, logger.Nop())

	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	assert.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunServer did not return after Shutdown")
	}
}

// ── run ──────────────────────────────────────────────────────────────────────

type stubWorker struct{ stopped chan struct{} }

func (w *stubWorker) Run(ctx context.Context) {
	<-ctx.Done()
	close(w.stopped)
}

func TestServer_Run_StopsWorkersOnCancel(t *testing.T) {
	worker := &stubWorker{stopped: make(chan struct{})}
	s := &server{
		httpServer: newHTTPServer(http.NewServeMux(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop()),
		workers:    workers.NewWorkers(worker),
		logger:     logger.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.run(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}

	select {
	case <-worker.stopped:
	default:
		t.Fatal("worker still running after run returned")
	}
}

func TestServer_Run_NothingToRun(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.Error(t, s.run(context.Background()))
}
