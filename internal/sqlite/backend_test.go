// Tests for the SQLite backend lifecycle and sync strategies.
package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dfb/gmtools/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBackend attaches a Backend to a fresh temp dir and detaches it when
// the test ends.
func setupBackend(t *testing.T, cfg types.Config) (*Backend, string) {
	t.Helper()
	if cfg.Backend == "" {
		cfg.Backend = types.BackendSQLite
	}
	if cfg.DataDir == "" {
		cfg.DataDir = t.TempDir()
	}
	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { b.Detach() })
	return b, cfg.DataDir
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, dbFile)); os.IsNotExist(err) {
		t.Error("gmtools.db not created")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, storeJSONL)); os.IsNotExist(err) {
		t.Error("store.jsonl not created")
	}

	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dataDir}))
	defer b.Detach()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
	assert.ErrorIs(t, b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      t.TempDir(),
		SyncStrategy: "sometimes",
	}), types.ErrSyncStrategyUnknown)
}

func TestBackend_Detach(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBackend(t, types.Config{})

	err := b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	_, _, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Set(ctx, "k", "v"), types.ErrStoreDetached)
	assert.ErrorIs(t, b.Delete(ctx, "k"), types.ErrStoreDetached)
}

func TestKV_CRUD(t *testing.T) {
	ctx := context.Background()
	b, _ := setupBackend(t, types.Config{})

	_, ok, err := b.Get(ctx, types.BoardListKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing key is not an error")

	require.NoError(t, b.Set(ctx, types.BoardListKey, `[]`))
	require.NoError(t, b.Set(ctx, types.BoardListKey, `[{"id":"1","name":"Plains"}]`))

	v, ok, err := b.Get(ctx, types.BoardListKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1","name":"Plains"}]`, v)

	require.NoError(t, b.Delete(ctx, types.BoardListKey))
	require.NoError(t, b.Delete(ctx, types.BoardListKey), "deleting an absent key succeeds")

	_, ok, err = b.Get(ctx, types.BoardListKey)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, b.Set(ctx, "", "x"), types.ErrInvalidKey)
}

func TestKV_SurvivesReattach(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	require.NoError(t, b.Set(ctx, "board_1", `{"id":"1"}`))
	require.NoError(t, b.Set(ctx, "board_2", `{"id":"2"}`))
	require.NoError(t, b.Delete(ctx, "board_2"))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	v, ok, err := b2.Get(ctx, "board_1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"1"}`, v)

	_, ok, err = b2.Get(ctx, "board_2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKV_Quota(t *testing.T) {
	ctx := context.Background()
	b, dir := setupBackend(t, types.Config{MaxBytes: 20})

	require.NoError(t, b.Set(ctx, "board_1", "0123456789"))

	err := b.Set(ctx, "board_2", "0123456789")
	assert.ErrorIs(t, err, types.ErrStoreFull)

	_, ok, err := b.Get(ctx, "board_2")
	require.NoError(t, err)
	assert.False(t, ok, "rejected write must not be stored")

	data, err := os.ReadFile(filepath.Join(dir, storeJSONL))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "board_2")

	// Overwriting the same key only counts the new value.
	require.NoError(t, b.Set(ctx, "board_1", "0123456789abc"))
}

func TestKV_CanceledContext(t *testing.T) {
	b, _ := setupBackend(t, types.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := b.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, b.Delete(ctx, "k"), context.Canceled)
}

func TestKV_StampsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := NewBackend()
	b.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600)) }
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	require.NoError(t, b.Set(ctx, "board_1", `{"id":"1"}`))

	data, err := os.ReadFile(filepath.Join(dir, storeJSONL))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"updated_at":"2026-03-04T04:06:07Z"`, "stamped in UTC")
}

func TestSyncStrategy_ImmediateDefault(t *testing.T) {
	ctx := context.Background()
	b, dir := setupBackend(t, types.Config{})

	if b.syncStrategy != types.SyncImmediate {
		t.Errorf("Default sync strategy should be 'immediate', got %q", b.syncStrategy)
	}

	require.NoError(t, b.Set(ctx, "board_1", `{"id":"1"}`))

	data, err := os.ReadFile(filepath.Join(dir, storeJSONL))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key":"board_1"`)
}

func TestSyncStrategy_OnClose_DefersWrites(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()

	b := NewBackend()
	err := b.Attach(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      tmpDir,
		SyncStrategy: types.SyncOnClose,
	})
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, b.Set(ctx, k, "v"))
	}

	path := filepath.Join(tmpDir, storeJSONL)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "store.jsonl should be empty before Detach with on_close")

	b.batchMu.Lock()
	pending := len(b.pendingWrites)
	b.batchMu.Unlock()
	assert.Equal(t, 3, pending)

	require.NoError(t, b.Detach())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)
}

func TestSyncStrategy_Batch_FlushAtThreshold(t *testing.T) {
	ctx := context.Background()
	b, dir := setupBackend(t, types.Config{
		SyncStrategy:  types.SyncBatch,
		BatchSize:     3,
		BatchInterval: 60,
	})
	path := filepath.Join(dir, storeJSONL)

	require.NoError(t, b.Set(ctx, "a", "1"))
	require.NoError(t, b.Set(ctx, "b", "2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "below threshold nothing is flushed")

	require.NoError(t, b.Set(ctx, "c", "3"))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	b.batchMu.Lock()
	assert.Empty(t, b.pendingWrites)
	b.batchMu.Unlock()
}
