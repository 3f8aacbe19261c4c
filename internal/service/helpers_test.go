package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/validators"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	errStorage = errors.New("storage error")

	// errConnLost is classified as retryable by the postgres classifier.
	errConnLost = &pgconn.PgError{Code: pgerrcode.ConnectionFailure, Message: "connection lost"}

	testNow = time.Date(2026, 3, 14, 9, 30, 15, 123456789, time.UTC)
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// seqIDs hands out id-1, id-2, ...
type seqIDs struct {
	n atomic.Int64
}

func (s *seqIDs) Generate() string {
	return fmt.Sprintf("id-%d", s.n.Add(1))
}

func ptr[T any](v T) *T {
	return &v
}

func newValidator() validators.Validator {
	return validators.NewRequestValidator()
}

// memoryKV is an in-memory store.KeyValueStore. failPut makes every Put fail.
// Tx holds txMu for the whole callback and restores the data on error.
type memoryKV struct {
	txMu    sync.Mutex
	mu      sync.Mutex
	data    map[string][]byte
	puts    int
	failPut error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryKV) Tx(_ context.Context, fn func(kv store.KeyValueStore) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	saved := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		saved[k] = v
	}
	m.mu.Unlock()

	if err := fn(memoryTx{m}); err != nil {
		m.mu.Lock()
		m.data = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

// memoryTx is the view handed to a Tx callback.
type memoryTx struct {
	*memoryKV
}

func (t memoryTx) Tx(_ context.Context, fn func(kv store.KeyValueStore) error) error {
	return fn(t)
}

func (m *memoryKV) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

func (m *memoryKV) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = []byte(value)
}
