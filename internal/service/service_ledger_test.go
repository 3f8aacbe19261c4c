// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedgerStore is an in-memory table with a unique index on ref.
type fakeLedgerStore struct {
	rows     map[string]string
	finds    int
	creates  int
	findErr  error
	raceWith string
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{rows: map[string]string{}}
}

func (f *fakeLedgerStore) find(_ context.Context, ref string) (string, error) {
	f.finds++
	if f.findErr != nil {
		return "", f.findErr
	}
	v, ok := f.rows[ref]
	if !ok {
		return "", store.ErrPickupNotFound
	}
	return v, nil
}

func (f *fakeLedgerStore) create(ref, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		f.creates++
		if f.raceWith != "" {
			// another writer committed first
			f.rows[ref] = f.raceWith
			return "", store.ErrDuplicateClientReference
		}
		if ref != "" {
			if _, taken := f.rows[ref]; taken {
				return "", store.ErrDuplicateClientReference
			}
			f.rows[ref] = value
		}
		return value, nil
	}
}

func newTestLedger(f *fakeLedgerStore) *idempotencyLedger[string] {
	return newIdempotencyLedger("pickup", f.find, store.ErrPickupNotFound)
}

// ── Write ────────────────────────────────────────────────────────────────────

func TestIdempotencyLedger_Write_FirstWriteCreates(t *testing.T) {
	f := newFakeLedgerStore()
	l := newTestLedger(f)

	got, duplicate, err := l.Write(context.Background(), "ref-1", f.create("ref-1", "first"))

	require.NoError(t, err)
	assert.False(t, duplicate)
	assert.Equal(t, "first", got)
	assert.Equal(t, 1, f.creates)
}

func TestIdempotencyLedger_Write_ReplayReturnsStoredEntity(t *testing.T) {
	f := newFakeLedgerStore()
	l := newTestLedger(f)
	ctx := context.Background()

	_, _, err := l.Write(ctx, "ref-1", f.create("ref-1", "first"))
	require.NoError(t, err)

	got, duplicate, err := l.Write(ctx, "ref-1", f.create("ref-1", "second"))

	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Equal(t, "first", got, "replay must not overwrite the stored entity")
	assert.Equal(t, 1, f.creates, "replay must not insert")
}

func TestIdempotencyLedger_Write_EmptyReferenceAlwaysCreates(t *testing.T) {
	f := newFakeLedgerStore()
	l := newTestLedger(f)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, duplicate, err := l.Write(ctx, "", f.create("", "anon"))
		require.NoError(t, err)
		assert.False(t, duplicate)
	}

	assert.Equal(t, 3, f.creates)
	assert.Zero(t, f.finds, "an empty reference is never looked up")
}

func TestIdempotencyLedger_Write_LostRaceReadsWinner(t *testing.T) {
	f := newFakeLedgerStore()
	f.raceWith = "winner"
	l := newTestLedger(f)

	got, duplicate, err := l.Write(context.Background(), "ref-1", f.create("ref-1", "loser"))

	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Equal(t, "winner", got)
	assert.Equal(t, 2, f.finds, "one lookup before the insert, one re-read after the race")
}

func TestIdempotencyLedger_Write_LookupFailure(t *testing.T) {
	f := newFakeLedgerStore()
	f.findErr = errStorage
	l := newTestLedger(f)

	_, _, err := l.Write(context.Background(), "ref-1", f.create("ref-1", "first"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIdempotencyLookup)
	assert.ErrorIs(t, err, errStorage)
	assert.Zero(t, f.creates)
}

func TestIdempotencyLedger_Create_OtherErrorsPassThrough(t *testing.T) {
	f := newFakeLedgerStore()
	l := newTestLedger(f)

	_, _, err := l.Create(context.Background(), "ref-1", func(context.Context) (string, error) {
		return "", errStorage
	})

	require.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrIdempotencyLookup)
	assert.Zero(t, f.finds)
}

func TestIdempotencyLedger_Create_DuplicateWithoutReferenceIsAnError(t *testing.T) {
	f := newFakeLedgerStore()
	l := newTestLedger(f)

	_, duplicate, err := l.Create(context.Background(), "", func(context.Context) (string, error) {
		return "", store.ErrDuplicateClientReference
	})

	require.ErrorIs(t, err, store.ErrDuplicateClientReference)
	assert.False(t, duplicate)
}
