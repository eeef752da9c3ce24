// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// loadJSONL reads store.jsonl from dataDir and inserts its records into the
// kv table. Loading is transactional: all succeed or the table stays empty.
// Malformed lines and records without a key are skipped; unknown fields are
// ignored. A later line for the same key replaces an earlier one.
func loadJSONL(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, storeJSONL))
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) " +
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at")
	if err != nil {
		return 0, fmt.Errorf("preparing kv insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, raw := range records {
		var rec kvRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.Key == "" {
			continue
		}
		if rec.UpdatedAt == "" {
			rec.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		}
		if _, err := stmt.Exec(rec.Key, rec.Value, rec.UpdatedAt); err != nil {
			return 0, fmt.Errorf("loading key %s: %w", rec.Key, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// dumpRecords reads every kv row, ordered by key, as JSONL records.
func dumpRecords(q queryer) ([]json.RawMessage, error) {
	rows, err := q.Query("SELECT key, value, updated_at FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("querying kv: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec kvRecord
		if err := rows.Scan(&rec.Key, &rec.Value, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning kv row: %w", err)
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling key %s: %w", rec.Key, err)
		}
		records = append(records, line)
	}
	return records, rows.Err()
}
