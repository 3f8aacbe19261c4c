// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/store"
)

// idempotencyLedger turns a create into an at-most-once write keyed by the
// client reference. The unique index on client_reference is the arbiter; the
// ledger only adds the lookups around it.
type idempotencyLedger[T any] struct {
	entity   string
	find     func(ctx context.Context, ref string) (T, error)
	notFound error
}

func newIdempotencyLedger[T any](entity string, find func(ctx context.Context, ref string) (T, error), notFound error) *idempotencyLedger[T] {
	return &idempotencyLedger[T]{entity: entity, find: find, notFound: notFound}
}

// Lookup returns the entity already written under ref. An empty ref never
// matches.
func (l *idempotencyLedger[T]) Lookup(ctx context.Context, ref string) (T, bool, error) {
	var zero T
	if ref == "" {
		return zero, false, nil
	}

	existing, err := l.find(ctx, ref)
	switch {
	case err == nil:
		return existing, true, nil
	case errors.Is(err, l.notFound):
		return zero, false, nil
	default:
		return zero, false, fmt.Errorf("%w: %w", ErrIdempotencyLookup, err)
	}
}

// Write looks ref up and calls create only when nothing was stored yet.
func (l *idempotencyLedger[T]) Write(ctx context.Context, ref string, create func(ctx context.Context) (T, error)) (T, bool, error) {
	existing, found, err := l.Lookup(ctx, ref)
	if err != nil || found {
		return existing, found, err
	}
	return l.Create(ctx, ref, create)
}

// Create runs create and resolves a lost race on the unique index by
// re-reading the winner. That re-read is the only retry.
func (l *idempotencyLedger[T]) Create(ctx context.Context, ref string, create func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T

	created, err := create(ctx)
	if err == nil {
		return created, false, nil
	}

	if ref == "" || !errors.Is(err, store.ErrDuplicateClientReference) {
		return zero, false, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*idempotencyLedger.Create").
		Str("entity", l.entity).
		Str("client_reference", ref).
		Msg("lost insert race, returning stored entity")

	existing, err := l.find(ctx, ref)
	if err != nil {
		return zero, false, fmt.Errorf("%w: %w", ErrIdempotencyLookup, err)
	}
	return existing, true, nil
}
