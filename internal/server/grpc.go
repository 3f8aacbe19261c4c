package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-waste-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-waste-sync/internal/logger"

	"google.golang.org/grpc"
)

// healthRefreshInterval is how often the gRPC health status re-checks the
// database.
const healthRefreshInterval = 10 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("gRPC listen on %s: %w", cfg.GRPCAddress, err)
	}
	return newGRPCServerWithListener(handler, listener, logger), nil
}

func newGRPCServerWithListener(handler *myGRPC.Handler, listener net.Listener, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	ctx, cancel := context.WithCancel(context.Background())
	return &grpcServer{
		handler:         handler,
		server:          server,
		gRPCNetListener: listener,
		ctx:             ctx,
		cancel:          cancel,
		logger:          logger,
	}
}

func (g *grpcServer) RunServer() {
	go g.handler.Watch(g.ctx, healthRefreshInterval)

	g.logger.Info().Str("address", g.gRPCNetListener.Addr().String()).Msg("gRPC server listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Err(err).Str("func", "*grpcServer.RunServer").Msg("gRPC server Serve")
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.cancel()
	g.handler.Shutdown()
	g.server.GracefulStop()
}
