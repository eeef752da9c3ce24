// Package kv provides the public factory for key-value store backends while
// keeping implementation details internal.
package kv

import (
	"log/slog"

	"github.com/dfb/gmtools/internal/memory"
	"github.com/dfb/gmtools/internal/sqlite"
	"github.com/dfb/gmtools/pkg/types"
)

// NewBackend creates a detached Store for config.Backend. Call Attach with
// the same Config to initialize it.
func NewBackend(config types.Config, logger *slog.Logger) (types.Store, error) {
	switch config.Backend {
	case types.BackendSQLite:
		return sqlite.NewBackend(sqlite.WithLogger(logger)), nil
	case types.BackendMemory:
		return memory.NewStore(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, types.ErrBackendUnknown
	}
}

// Open creates the Store for config and attaches it. The caller must
// Detach the returned Store.
//
// Example:
//
//	store, err := kv.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".gmtools-db",
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Detach()
func Open(config types.Config, logger *slog.Logger) (types.Store, error) {
	store, err := NewBackend(config, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Attach(config); err != nil {
		return nil, err
	}
	return store, nil
}
