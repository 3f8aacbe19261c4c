package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/handler"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/server"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("waste-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	var sink store.SnapshotSink
	if cfg.Workers.Snapshot.Interval > 0 {
		sink, err = store.NewSnapshotSink(ctx, cfg.Workers.Snapshot, log)
		if err != nil && !errors.Is(err, store.ErrNoSnapshotSink) {
			log.Fatal().Err(err).Msg("error creating snapshot sink")
		}
		if err != nil {
			log.Warn().Err(err).Msg("snapshots disabled")
		}
	}

	services, err := service.NewServices(storages, sink, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(
		workers.NewSnapshotWorker(services.SnapshotService, cfg.Workers.Snapshot.Interval, log),
	)

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
