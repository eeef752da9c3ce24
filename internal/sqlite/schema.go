// Package sqlite implements the SQLite backend for the gmtools key-value store.
package sqlite

// Schema DDL. The kv table mirrors store.jsonl; SQLite is the query engine and
// the JSONL file is the source of truth.
const (
	createKV = `CREATE TABLE kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxKVUpdated = `CREATE INDEX idx_kv_updated ON kv(updated_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createKV,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxKVUpdated,
}
