// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until ctx is done.
	Run(ctx context.Context) error

	// Close releases local resources.
	Close() error
}

var _ Client = (*App)(nil)
