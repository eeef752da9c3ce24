package memory

import (
	"context"
	"testing"

	"github.com/dfb/gmtools/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attached(t *testing.T, cfg types.Config) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.Attach(cfg))
	t.Cleanup(func() { s.Detach() })
	return s
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	assert.ErrorIs(t, s.Attach(types.Config{Backend: types.BackendMemory}), types.ErrAlreadyAttached)

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach())

	assert.ErrorIs(t, s.Set(ctx, "k", "v2"), types.ErrStoreDetached)
	assert.ErrorIs(t, s.Delete(ctx, "k"), types.ErrStoreDetached)

	require.NoError(t, s.Attach(types.Config{Backend: types.BackendMemory}))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestStore_AttachRejectsInvalidConfig(t *testing.T) {
	s := NewStore()
	assert.ErrorIs(t, s.Attach(types.Config{}), types.ErrBackendEmpty)
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := attached(t, types.Config{Backend: types.BackendMemory})

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "a", "2"))
	v, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"), "deleting an absent key succeeds")
	_, ok, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.Set(ctx, "", "x"), types.ErrInvalidKey)
}

func TestStore_Quota(t *testing.T) {
	ctx := context.Background()
	s := attached(t, types.Config{Backend: types.BackendMemory, MaxBytes: 10})

	require.NoError(t, s.Set(ctx, "k", "12345"))

	err := s.Set(ctx, "k", "1234567890")
	assert.ErrorIs(t, err, types.ErrStoreFull)

	v, _, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "12345", v, "rejected write leaves the previous value")

	// Replacing a value frees its old size before the check.
	require.NoError(t, s.Set(ctx, "k", "123456789"))

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Set(ctx, "j", "123456789"))
}

func TestStore_CanceledContext(t *testing.T) {
	s := attached(t, types.Config{Backend: types.BackendMemory})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
}
