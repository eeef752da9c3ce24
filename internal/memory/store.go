// Package memory provides an in-memory Store used for tests and ephemeral
// editing sessions. Nothing is written to disk.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dfb/gmtools/pkg/types"
)

var _ types.Store = (*Store)(nil)

// Store implements types.Store on a map.
type Store struct {
	mu       sync.RWMutex
	attached bool
	maxBytes int64
	size     int64
	data     map[string]string
}

// NewStore creates a detached memory store. Call Attach before use.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

// Attach validates config and readies the store. Existing data survives a
// Detach/Attach cycle on the same Store value.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	s.maxBytes = config.MaxBytes
	s.attached = true
	return nil
}

// Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
	return nil
}

// Get returns the value for key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.attached {
		return "", false, types.ErrStoreDetached
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key. Returns ErrStoreFull, leaving the previous
// value in place, when the write would exceed the configured quota.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return types.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}

	newSize := s.size + entrySize(key, value)
	if old, ok := s.data[key]; ok {
		newSize -= entrySize(key, old)
	}
	if s.maxBytes > 0 && newSize > s.maxBytes {
		return fmt.Errorf("set %s (%d of %d bytes): %w", key, newSize, s.maxBytes, types.ErrStoreFull)
	}

	s.data[key] = value
	s.size = newSize
	return nil
}

// Delete removes key; absent keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	if old, ok := s.data[key]; ok {
		s.size -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}
