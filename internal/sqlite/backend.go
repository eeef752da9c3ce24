package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dfb/gmtools/internal/logging"
	"github.com/dfb/gmtools/pkg/types"
)

var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using SQLite as the query engine
// and a JSONL file as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
	now      func() time.Time

	syncStrategy  string         // effective sync strategy: immediate, on_close, batch
	batchSize     int            // number of writes before batch flush
	batchInterval time.Duration  // time between batch flushes
	pendingWrites []pendingWrite // queue of writes pending JSONL persist
	batchTimer    *time.Timer    // timer for interval-based batch flush
	batchMu       sync.Mutex     // protects pendingWrites and batchTimer
}

// pendingWrite represents a deferred JSONL write operation.
// Used by on_close and batch sync strategies.
type pendingWrite struct {
	key       string       // store key that changed
	operation string       // "set" or "delete"
	persist   func() error // function to execute the JSONL write
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for load and flush diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, rebuilds the SQLite database from
// store.jsonl, and starts the batch timer when configured.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The database is derived state; rebuild it from JSONL on every attach.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err := ensureJSONL(dataDir); err != nil {
		db.Close()
		return err
	}

	loaded, err := loadJSONL(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	config.DataDir = dataDir
	b.db = db
	b.config = config

	b.syncStrategy = config.GetSyncStrategy()
	b.batchSize = config.GetBatchSize()
	b.batchInterval = time.Duration(config.GetBatchInterval()) * time.Second
	b.pendingWrites = nil

	b.attached = true

	if b.syncStrategy == types.SyncBatch && b.batchInterval > 0 {
		b.startBatchTimer()
	}

	b.logger.Debug("store attached",
		"data_dir", dataDir,
		"keys", loaded,
		"sync", b.syncStrategy,
	)
	return nil
}

// Detach releases all resources held by the backend.
// Flushes pending writes, then closes the SQLite connection. After Detach,
// all operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.stopBatchTimer()

	if err := b.flushPendingWritesLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.logger.Debug("store detached", "data_dir", b.config.DataDir)
	return nil
}

// jsonlPath returns the path of store.jsonl for the attached config.
func (b *Backend) jsonlPath() string {
	return filepath.Join(b.config.DataDir, storeJSONL)
}

// persistAll rewrites store.jsonl from the current database contents.
func (b *Backend) persistAll() error {
	records, err := dumpRecords(b.db)
	if err != nil {
		return err
	}
	return writeJSONL(b.jsonlPath(), records)
}

// shouldPersistImmediately returns true if JSONL writes should happen immediately.
func (b *Backend) shouldPersistImmediately() bool {
	return b.syncStrategy == types.SyncImmediate || b.syncStrategy == ""
}

// queueWrite adds a write operation to the pending queue.
// For "on_close" strategy, writes are queued until Detach.
// For "batch" strategy, writes are queued until batch size or interval is reached.
// The caller must hold b.mu.
func (b *Backend) queueWrite(key, operation string, persist func() error) {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	b.pendingWrites = append(b.pendingWrites, pendingWrite{
		key:       key,
		operation: operation,
		persist:   persist,
	})

	if b.syncStrategy == types.SyncBatch && b.batchSize > 0 && len(b.pendingWrites) >= b.batchSize {
		if err := b.flushPendingWritesBatchLocked(); err != nil {
			b.logger.Warn("batch flush failed", "error", err)
		}
	}
}

// flushPendingWritesLocked flushes all pending writes to the JSONL file.
// The caller must hold b.mu write lock.
func (b *Backend) flushPendingWritesLocked() error {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	return b.flushPendingWritesBatchLocked()
}

// flushPendingWritesBatchLocked executes pending writes. Every queued persist
// rewrites the whole file, so only the last one needs to run.
// The caller must hold b.batchMu lock.
func (b *Backend) flushPendingWritesBatchLocked() error {
	if len(b.pendingWrites) == 0 {
		return nil
	}

	last := b.pendingWrites[len(b.pendingWrites)-1]
	if err := last.persist(); err != nil {
		return fmt.Errorf("flush %d writes ending with %s %s: %w",
			len(b.pendingWrites), last.operation, last.key, err)
	}

	b.pendingWrites = nil
	return nil
}

// startBatchTimer starts the batch interval timer for periodic flushes.
func (b *Backend) startBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		return
	}

	b.batchTimer = time.AfterFunc(b.batchInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.attached {
			return
		}

		if err := b.flushPendingWritesLocked(); err != nil {
			b.logger.Warn("interval flush failed", "error", err)
		}

		b.batchMu.Lock()
		if b.batchTimer != nil && b.attached {
			b.batchTimer.Reset(b.batchInterval)
		}
		b.batchMu.Unlock()
	})
}

// stopBatchTimer stops the batch interval timer if running.
func (b *Backend) stopBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		b.batchTimer.Stop()
		b.batchTimer = nil
	}
}
