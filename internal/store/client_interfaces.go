package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// KeyValueStore is the client's durable local storage. Values are opaque
// bytes; callers store JSON documents under well-known keys.
//
// Several processes may open the same database. A read-modify-write of a
// document must run inside Tx, otherwise a concurrent writer's change can be
// overwritten by a stale copy.
type KeyValueStore interface {
	// Get returns [ErrKeyNotFound] when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Tx runs fn against a view of the store bound to one write transaction.
	// An error from fn rolls every write back. Tx on that view joins the
	// running transaction.
	Tx(ctx context.Context, fn func(kv KeyValueStore) error) error
}
