package types

import "context"

// KeyValueStore is a string-keyed blob store. Every operation takes a context
// so a remote store can replace a local one without changing callers.
type KeyValueStore interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value. When the
	// write is rejected the previous value is left in place.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key succeeds.
	Delete(ctx context.Context, key string) error
}

// Store is a KeyValueStore with a backend lifecycle. Callers attach to a
// backend, use it, and detach when done.
type Store interface {
	KeyValueStore

	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources and flushes pending writes.
	// Idempotent: multiple calls succeed. After Detach, operations return
	// ErrStoreDetached.
	Detach() error
}
