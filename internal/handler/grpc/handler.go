package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name of the sync API. The empty name
// reports the same status for the server as a whole.
const ServiceName = "wastesync.v1.Sync"

// Handler is the root gRPC transport handler. It exposes grpc.health.v1
// and keeps the reported status in line with database reachability.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a Handler that reports NOT_SERVING until the first
// successful database check.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s gogrpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Refresh pings the database once and publishes the resulting status.
func (h *Handler) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.HealthService.Check(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "*Handler.Refresh").Msg("database unreachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.setStatus(status)
	return status
}

// Watch refreshes the status every interval until ctx is done.
func (h *Handler) Watch(ctx context.Context, interval time.Duration) {
	h.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Refresh(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING on every service and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
