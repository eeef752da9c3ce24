package boards

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/dfb/gmtools/internal/memory"
	"github.com/dfb/gmtools/pkg/types"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected store failure")

// idFunc adapts a function to IDGenerator.
type idFunc func() string

func (f idFunc) NextID() string { return f() }

// seqIDs hands out "1", "2", ... so tests can predict board ids.
func seqIDs() IDGenerator {
	var mu sync.Mutex
	n := 0
	return idFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return strconv.Itoa(n)
	})
}

// newMemoryKV returns an attached memory store.
func newMemoryKV(t *testing.T, cfg types.Config) *memory.Store {
	t.Helper()
	cfg.Backend = types.BackendMemory
	kv := memory.NewStore()
	require.NoError(t, kv.Attach(cfg))
	t.Cleanup(func() { kv.Detach() })
	return kv
}

// faultyKV wraps a store and fails Set, Get or Delete for chosen keys.
type faultyKV struct {
	types.KeyValueStore
	failSet    map[string]bool
	failGet    map[string]bool
	failDelete map[string]bool
}

func newFaultyKV(inner types.KeyValueStore) *faultyKV {
	return &faultyKV{
		KeyValueStore: inner,
		failSet:       map[string]bool{},
		failGet:       map[string]bool{},
		failDelete:    map[string]bool{},
	}
}

func (f *faultyKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet[key] {
		return "", false, errInjected
	}
	return f.KeyValueStore.Get(ctx, key)
}

func (f *faultyKV) Set(ctx context.Context, key, value string) error {
	if f.failSet[key] {
		return errInjected
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func (f *faultyKV) Delete(ctx context.Context, key string) error {
	if f.failDelete[key] {
		return errInjected
	}
	return f.KeyValueStore.Delete(ctx, key)
}

// paint gives every tile of b a distinct, recognisable state.
func paint(b *types.Board) {
	terrains := []string{types.TileTypeGrass, types.TileTypeWater, types.TileTypeForest, types.TileTypeSand}
	for x := 0; x < b.W; x++ {
		for y := 0; y < b.H; y++ {
			tile := &b.Tiles[x][y]
			tile.Type = terrains[(x+y)%len(terrains)]
			tile.Light = "light-" + strconv.Itoa(x)
			tile.Movement = "mv-" + strconv.Itoa(y)
			tile.Units = []types.UnitInstance{{ID: 100 + x*10 + y, Unit: "Archer", Health: 5}}
		}
	}
}
