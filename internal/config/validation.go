// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the merged server configuration can be used at
// startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	snapshot := cfg.Workers.Snapshot
	if snapshot.Interval < 0 {
		return ErrInvalidWorkerConfigs
	}
	if snapshot.Interval > 0 && snapshot.Dir == "" && snapshot.S3.Bucket == "" {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	w := cfg.Workers
	if w.SyncInterval <= 0 || w.QueueMaxAttempts < 0 || w.QueueBaseBackoff <= 0 || w.QueueMaxBackoff < w.QueueBaseBackoff {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
