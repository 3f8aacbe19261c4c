// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/service"
)

// SnapshotWorker takes a full backup every interval.
type SnapshotWorker struct {
	snapshots service.SnapshotService
	interval  time.Duration
	logger    *logger.Logger
}

// NewSnapshotWorker returns nil when snapshots are disabled, either because
// there is no snapshot service or because interval is not positive.
func NewSnapshotWorker(snapshots service.SnapshotService, interval time.Duration, logger *logger.Logger) Worker {
	if snapshots == nil || interval <= 0 {
		return nil
	}
	return &SnapshotWorker{
		snapshots: snapshots,
		interval:  interval,
		logger:    logger.WithComponent("snapshot_worker"),
	}
}

// Run takes the first snapshot after one interval, not at startup.
func (w *SnapshotWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("snapshot worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("snapshot worker stopped")
			return
		case <-ticker.C:
			w.takeSnapshot(ctx)
		}
	}
}

func (w *SnapshotWorker) takeSnapshot(ctx context.Context) {
	ctx = w.logger.WithContext(ctx)

	name, size, err := w.snapshots.TakeSnapshot(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "*SnapshotWorker.takeSnapshot").Msg("snapshot failed")
		return
	}
	w.logger.Debug().Str("func", "*SnapshotWorker.takeSnapshot").Str("name", name).Int("bytes", size).Msg("snapshot taken")
}
