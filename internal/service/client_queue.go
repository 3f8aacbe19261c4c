// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

// ErrMutationNotFound is returned by Requeue for an unknown local id.
var ErrMutationNotFound = errors.New("queued mutation not found")

// Submitter sends one queued mutation. The server adapter satisfies it.
type Submitter interface {
	Submit(ctx context.Context, area models.QueueArea, payload models.Payload) (models.WriteAck, error)
}

// QueueHooks are called by a flush. Both are optional.
type QueueHooks struct {
	// OnFlushed runs after a flush that removed at least one entry as
	// stored on the server.
	OnFlushed func(ctx context.Context)
	// OnUnauthorized runs when the server rejected the session.
	OnUnauthorized func(ctx context.Context)
}

func queueKey(area models.QueueArea) string { return "queue:" + string(area) }

func deadLetterKey(area models.QueueArea) string { return "queue:" + string(area) + ":dead" }

type mutationQueue struct {
	area      models.QueueArea
	kv        store.KeyValueStore
	submitter Submitter
	monitor   ConnectivityMonitor
	policy    RetryPolicy
	hooks     QueueHooks

	flushing atomic.Bool
	signal   chan struct{}

	ids    IDGenerator
	clock  Clock
	logger *logger.Logger
}

// NewMutationQueue builds the queue of one feature area. The stored lists
// are the only copy: every change re-reads them inside a store transaction,
// so processes sharing the database never overwrite each other's entries.
func NewMutationQueue(area models.QueueArea, kv store.KeyValueStore, submitter Submitter, monitor ConnectivityMonitor,
	policy RetryPolicy, hooks QueueHooks, logger *logger.Logger) MutationQueue {
	return &mutationQueue{
		area:      area,
		kv:        kv,
		submitter: submitter,
		monitor:   monitor,
		policy:    policy,
		hooks:     hooks,
		signal:    make(chan struct{}, 1),
		ids:       utils.NewUUIDGenerator(),
		clock:     time.Now,
		logger:    logger.WithComponent("queue:" + string(area)),
	}
}

func (q *mutationQueue) Area() models.QueueArea {
	return q.area
}

// queueState is one read of both stored lists.
type queueState struct {
	entries, dead               []models.PendingMutation
	entriesChanged, deadChanged bool
}

func (s *queueState) indexOf(localID string) int {
	for i := range s.entries {
		if s.entries[i].LocalID == localID {
			return i
		}
	}
	return -1
}

// read drops corrupt documents so that one bad write cannot wedge the queue.
func (q *mutationQueue) read(ctx context.Context, kv store.KeyValueStore) (*queueState, error) {
	s := &queueState{}
	if _, err := store.GetJSON(ctx, kv, queueKey(q.area), &s.entries); err != nil {
		if !errors.Is(err, store.ErrCorruptDocument) {
			return nil, err
		}
		q.logger.Err(err).Str("func", "*mutationQueue.read").Msg("discarding corrupt queue")
		s.entries = nil
	}
	if _, err := store.GetJSON(ctx, kv, deadLetterKey(q.area), &s.dead); err != nil {
		if !errors.Is(err, store.ErrCorruptDocument) {
			return nil, err
		}
		q.logger.Err(err).Str("func", "*mutationQueue.read").Msg("discarding corrupt dead letters")
		s.dead = nil
	}
	return s, nil
}

// mutate runs fn over a fresh read and writes back what fn changed, all in
// one transaction. Dead letters are written first.
func (q *mutationQueue) mutate(ctx context.Context, fn func(s *queueState) error) error {
	return q.kv.Tx(ctx, func(kv store.KeyValueStore) error {
		s, err := q.read(ctx, kv)
		if err != nil {
			return fmt.Errorf("loading queue: %w", err)
		}
		if err = fn(s); err != nil {
			return err
		}
		if s.deadChanged {
			if err = store.PutJSON(ctx, kv, deadLetterKey(q.area), nonNil(s.dead)); err != nil {
				return fmt.Errorf("persisting dead letters: %w", err)
			}
		}
		if s.entriesChanged {
			if err = store.PutJSON(ctx, kv, queueKey(q.area), nonNil(s.entries)); err != nil {
				return fmt.Errorf("persisting queue: %w", err)
			}
		}
		return nil
	})
}

// Enqueue returns only after the entry is durable.
func (q *mutationQueue) Enqueue(ctx context.Context, payload models.Payload) (models.PendingMutation, error) {
	now := q.clock().UTC()

	body := make(models.Payload, len(payload)+2)
	for k, v := range payload {
		body[k] = v
	}
	if ref, _ := body["clientReference"].(string); ref == "" {
		body["clientReference"] = newClientReference(q.area, now)
	}
	if ts, _ := body["timestamp"].(string); ts == "" {
		body["timestamp"] = now.Format(time.RFC3339)
	}

	entry := models.PendingMutation{
		LocalID:    q.ids.Generate(),
		Payload:    body,
		EnqueuedAt: now,
	}

	var size int
	err := q.mutate(ctx, func(s *queueState) error {
		s.entries = append(s.entries, entry)
		s.entriesChanged = true
		size = len(s.entries)
		return nil
	})
	if err != nil {
		return models.PendingMutation{}, err
	}

	q.logger.Info().Str("func", "*mutationQueue.Enqueue").Str("local_id", entry.LocalID).
		Str("client_reference", entry.ClientReference()).Int("size", size).Msg("mutation queued")

	if q.monitor.Online() {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
	return entry, nil
}

// newClientReference is <prefix>-<unix millis>-<random hex>.
func newClientReference(area models.QueueArea, now time.Time) string {
	return area.ReferencePrefix() + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + utils.RandomHex(4)
}

func (q *mutationQueue) Flush(ctx context.Context) models.FlushReport {
	return q.flush(ctx, false)
}

func (q *mutationQueue) Retry(ctx context.Context) models.FlushReport {
	return q.flush(ctx, true)
}

func (q *mutationQueue) flush(ctx context.Context, ignoreBackoff bool) models.FlushReport {
	report := models.FlushReport{Area: q.area}

	if !q.monitor.Online() {
		return report
	}
	if !q.flushing.CompareAndSwap(false, true) {
		return report
	}
	defer q.flushing.Store(false)

	state, err := q.read(ctx, q.kv)
	if err != nil {
		q.logger.Err(err).Str("func", "*mutationQueue.flush").Msg("loading queue failed")
		return report
	}
	// a result the server already acted on is recorded even after ctx ends
	persistCtx := context.WithoutCancel(ctx)

	for _, entry := range state.entries {
		if ctx.Err() != nil {
			break
		}

		now := q.clock().UTC()
		if !ignoreBackoff && entry.NextAttemptAt != nil && now.Before(*entry.NextAttemptAt) {
			report.Skipped++
			continue
		}

		ack, err := q.submitter.Submit(ctx, q.area, entry.Payload)
		if err != nil && ctx.Err() != nil {
			// the caller gave up; the entry stays as it was
			break
		}
		report.Attempted++
		if err == nil || errors.Is(err, adapter.ErrConflict) {
			if err != nil || ack.Duplicate {
				report.Duplicates++
			} else {
				report.Submitted++
			}
			q.remove(persistCtx, entry.LocalID)
			continue
		}

		disposition := q.policy.Classify(err)
		if disposition == models.Hold {
			report.Unauthorized = true
			q.update(persistCtx, entry.LocalID, func(m *models.PendingMutation) { m.LastError = err.Error() })
			break
		}

		report.Failed++
		attempts := entry.Attempts + 1
		if disposition == models.Retry && (q.policy.MaxAttempts() == 0 || attempts < q.policy.MaxAttempts()) {
			next := now.Add(q.policy.Backoff(attempts))
			q.update(persistCtx, entry.LocalID, func(m *models.PendingMutation) {
				m.Attempts = attempts
				m.NextAttemptAt = &next
				m.LastError = err.Error()
			})
			q.logger.Warn().Err(err).Str("func", "*mutationQueue.flush").Str("local_id", entry.LocalID).
				Int("attempts", attempts).Time("next_attempt_at", next).Msg("submission failed, will retry")
			continue
		}

		report.DeadLettered++
		q.deadLetter(persistCtx, entry.LocalID, attempts, err)
	}

	q.logger.Debug().Str("func", "*mutationQueue.flush").
		Int("attempted", report.Attempted).
		Int("submitted", report.Submitted).
		Int("duplicates", report.Duplicates).
		Int("failed", report.Failed).
		Int("dead_lettered", report.DeadLettered).
		Int("skipped", report.Skipped).
		Msg("flush finished")

	if report.Unauthorized && q.hooks.OnUnauthorized != nil {
		q.hooks.OnUnauthorized(ctx)
	}
	if report.Submitted+report.Duplicates > 0 && q.hooks.OnFlushed != nil {
		q.hooks.OnFlushed(ctx)
	}
	return report
}

func (q *mutationQueue) remove(ctx context.Context, localID string) {
	err := q.mutate(ctx, func(s *queueState) error {
		if i := s.indexOf(localID); i >= 0 {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			s.entriesChanged = true
		}
		return nil
	})
	if err != nil {
		q.logger.Err(err).Str("func", "*mutationQueue.remove").Str("local_id", localID).Msg("persisting queue failed")
	}
}

func (q *mutationQueue) update(ctx context.Context, localID string, fn func(*models.PendingMutation)) {
	err := q.mutate(ctx, func(s *queueState) error {
		if i := s.indexOf(localID); i >= 0 {
			fn(&s.entries[i])
			s.entriesChanged = true
		}
		return nil
	})
	if err != nil {
		q.logger.Err(err).Str("func", "*mutationQueue.update").Str("local_id", localID).Msg("persisting queue failed")
	}
}

func (q *mutationQueue) deadLetter(ctx context.Context, localID string, attempts int, cause error) {
	var entry models.PendingMutation
	moved := false
	err := q.mutate(ctx, func(s *queueState) error {
		i := s.indexOf(localID)
		if i < 0 {
			return nil
		}
		entry = s.entries[i]
		entry.Attempts = attempts
		entry.NextAttemptAt = nil
		entry.LastError = cause.Error()

		s.dead = append(s.dead, entry)
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
		s.entriesChanged, s.deadChanged, moved = true, true, true
		return nil
	})
	if err != nil {
		q.logger.Err(err).Str("func", "*mutationQueue.deadLetter").Str("local_id", localID).Msg("persisting dead letters failed")
		return
	}
	if moved {
		q.logger.Warn().Err(cause).Str("func", "*mutationQueue.deadLetter").Str("local_id", localID).
			Str("client_reference", entry.ClientReference()).Msg("mutation dead-lettered")
	}
}

func (q *mutationQueue) Pending(ctx context.Context) ([]models.PendingMutation, error) {
	s, err := q.read(ctx, q.kv)
	if err != nil {
		return nil, err
	}
	return nonNil(s.entries), nil
}

func (q *mutationQueue) DeadLetters(ctx context.Context) ([]models.PendingMutation, error) {
	s, err := q.read(ctx, q.kv)
	if err != nil {
		return nil, err
	}
	return nonNil(s.dead), nil
}

// Requeue resets the attempt counter of the dead letter.
func (q *mutationQueue) Requeue(ctx context.Context, localID string) error {
	return q.mutate(ctx, func(s *queueState) error {
		i := -1
		for j := range s.dead {
			if s.dead[j].LocalID == localID {
				i = j
				break
			}
		}
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrMutationNotFound, localID)
		}

		entry := s.dead[i]
		entry.Attempts = 0
		entry.NextAttemptAt = nil

		s.entries = append(s.entries, entry)
		s.dead = append(s.dead[:i:i], s.dead[i+1:]...)
		s.entriesChanged, s.deadChanged = true, true
		return nil
	})
}

func (q *mutationQueue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.signal:
			q.Flush(ctx)
		}
	}
}
