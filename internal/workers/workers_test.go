// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// blockingWorker counts runs and blocks until its context is done.
type blockingWorker struct {
	started  atomic.Int64
	finished atomic.Int64
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Add(1)
	<-ctx.Done()
	b.finished.Add(1)
}

func TestWorkers_Run_StartsAllConcurrently(t *testing.T) {
	w1, w2, w3 := &blockingWorker{}, &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(w1, w2, w3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ws.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1 && w3.started.Load() == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	for i, w := range []*blockingWorker{w1, w2, w3} {
		assert.Equal(t, int64(1), w.finished.Load(), "worker[%d] returned before Run", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// returns at once with nothing to run
	ws.Run(context.Background())
	assert.Zero(t, ws.Len())
}

func TestWorkers_Run_ZeroValue(t *testing.T) {
	ws := &Workers{}

	assert.NotPanics(t, func() { ws.Run(context.Background()) })
}

func TestNewWorkers_SkipsNil(t *testing.T) {
	ws := NewWorkers(nil, &blockingWorker{}, NewSnapshotWorker(nil, time.Minute, nil))

	assert.Equal(t, 1, ws.Len())
}
