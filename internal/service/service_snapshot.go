// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/golang/snappy"
)

// snapshotNameLayout keeps snapshot names lexically ordered by time.
const snapshotNameLayout = "20060102T150405.000Z"

type snapshotService struct {
	sync   SyncService
	sink   store.SnapshotSink
	clock  Clock
	logger *logger.Logger
}

// NewSnapshotService builds full-dataset backups out of an unscoped delta.
func NewSnapshotService(sync SyncService, sink store.SnapshotSink, clock Clock, logger *logger.Logger) SnapshotService {
	if clock == nil {
		clock = time.Now
	}
	return &snapshotService{sync: sync, sink: sink, clock: clock, logger: logger}
}

// TakeSnapshot writes snapshots/<time>.json.sz as a framed snappy stream and
// returns its name and compressed size.
func (s *snapshotService) TakeSnapshot(ctx context.Context) (string, int, error) {
	log := logger.FromContext(ctx)

	data, err := s.sync.GetUpdates(ctx, models.SyncRequest{Role: models.RoleAdmin})
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if err = json.NewEncoder(w).Encode(data); err != nil {
		return "", 0, fmt.Errorf("%w: encoding: %w", ErrSnapshot, err)
	}
	if err = w.Close(); err != nil {
		return "", 0, fmt.Errorf("%w: compressing: %w", ErrSnapshot, err)
	}

	name := "snapshots/" + s.clock().UTC().Format(snapshotNameLayout) + ".json.sz"
	if err = s.sink.Put(ctx, name, buf.Bytes()); err != nil {
		log.Err(err).Str("func", "*snapshotService.TakeSnapshot").Str("sink", s.sink.Name()).Msg("snapshot upload failed")
		return "", 0, fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	log.Info().Str("func", "*snapshotService.TakeSnapshot").
		Str("sink", s.sink.Name()).
		Str("name", name).
		Int("bins", len(data.Bins)).
		Int("pickups", len(data.Pickups)).
		Int("transactions", len(data.Transactions)).
		Int("collections", len(data.Collections)).
		Int("bytes", buf.Len()).
		Msg("snapshot stored")
	return name, buf.Len(), nil
}
