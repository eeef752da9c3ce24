// This file implements the KeyValueStore operations of the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfb/gmtools/pkg/types"
)

// Get returns the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", false, types.ErrStoreDetached
	}

	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key. With a MaxBytes quota configured, a write that
// would exceed it fails with ErrStoreFull and changes nothing.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	if err := b.checkQuota(ctx, key, value); err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at",
		key, value, b.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	return b.commit(tx, key, "set")
}

// Delete removes key. Deleting an absent key succeeds without a write.
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil
	}

	return b.commit(tx, key, "delete")
}

// checkQuota returns ErrStoreFull when replacing key with value would push
// the byte size of all keys and values past MaxBytes.
func (b *Backend) checkQuota(ctx context.Context, key, value string) error {
	if b.config.MaxBytes <= 0 {
		return nil
	}
	var used int64
	err := b.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(length(CAST(key AS BLOB)) + length(CAST(value AS BLOB))), 0) FROM kv WHERE key != ?",
		key,
	).Scan(&used)
	if err != nil {
		return fmt.Errorf("measuring store size: %w", err)
	}
	total := used + int64(len(key)+len(value))
	if total > b.config.MaxBytes {
		return fmt.Errorf("set %s (%d of %d bytes): %w", key, total, b.config.MaxBytes, types.ErrStoreFull)
	}
	return nil
}

// commit finishes a write transaction. With the immediate strategy the JSONL
// file is rewritten before the commit, so a failed file write rolls the
// database back and leaves both in their previous state. Other strategies
// commit and queue the file write.
func (b *Backend) commit(tx *sql.Tx, key, operation string) error {
	if b.shouldPersistImmediately() {
		records, err := dumpRecords(tx)
		if err != nil {
			return err
		}
		if err := writeJSONL(b.jsonlPath(), records); err != nil {
			return fmt.Errorf("persisting %s: %w", storeJSONL, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing %s %s: %w", operation, key, err)
		}
		return nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s %s: %w", operation, key, err)
	}
	b.queueWrite(key, operation, b.persistAll)
	return nil
}
