package types

import "errors"

// Config holds backend selection and parameters for Store.Attach and the
// board service.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SyncStrategy controls when the sqlite backend persists its JSONL file:
	// immediate (default), on_close, or batch.
	SyncStrategy string `json:"sync_strategy,omitempty" yaml:"sync_strategy,omitempty"`

	// BatchSize is the number of writes before a batch flush.
	BatchSize int `json:"batch_size,omitempty" yaml:"batch_size,omitempty"`

	// BatchInterval is the number of seconds between batch flushes.
	BatchInterval int `json:"batch_interval,omitempty" yaml:"batch_interval,omitempty"`

	// MaxBytes caps the total size of stored keys and values. Zero means no
	// limit.
	MaxBytes int64 `json:"max_bytes,omitempty" yaml:"max_bytes,omitempty"`

	// IDScheme selects how new board ids are generated: timestamp (default)
	// or uuid.
	IDScheme string `json:"id_scheme,omitempty" yaml:"id_scheme,omitempty"`

	// CatalogFile optionally points at a YAML unit catalog.
	CatalogFile string `json:"catalog_file,omitempty" yaml:"catalog_file,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Sync strategies for the sqlite backend.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
	SyncBatch     = "batch"
)

// Board id schemes.
const (
	IDSchemeTimestamp = "timestamp"
	IDSchemeUUID      = "uuid"
)

// Defaults applied by the Get helpers when a field is unset.
const (
	DefaultBatchSize     = 10
	DefaultBatchInterval = 5
)

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must be positive")
	ErrBatchIntervalInvalid = errors.New("batch interval must be positive")
	ErrMaxBytesInvalid      = errors.New("max bytes must not be negative")
	ErrIDSchemeUnknown      = errors.New("unknown id scheme")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendMemory: true,
}

var knownSyncStrategies = map[string]bool{
	SyncImmediate: true,
	SyncOnClose:   true,
	SyncBatch:     true,
}

var knownIDSchemes = map[string]bool{
	IDSchemeTimestamp: true,
	IDSchemeUUID:      true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. Zero values for optional fields are valid.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.SyncStrategy != "" && !knownSyncStrategies[c.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	if c.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if c.BatchInterval < 0 {
		return ErrBatchIntervalInvalid
	}
	if c.MaxBytes < 0 {
		return ErrMaxBytesInvalid
	}
	if c.IDScheme != "" && !knownIDSchemes[c.IDScheme] {
		return ErrIDSchemeUnknown
	}
	return nil
}

// GetSyncStrategy returns the sync strategy, defaulting to immediate.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}

// GetBatchSize returns the batch size, defaulting to DefaultBatchSize.
func (c Config) GetBatchSize() int {
	if c.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// GetBatchInterval returns the batch interval in seconds, defaulting to
// DefaultBatchInterval.
func (c Config) GetBatchInterval() int {
	if c.BatchInterval <= 0 {
		return DefaultBatchInterval
	}
	return c.BatchInterval
}

// GetIDScheme returns the id scheme, defaulting to timestamp.
func (c Config) GetIDScheme() string {
	if c.IDScheme == "" {
		return IDSchemeTimestamp
	}
	return c.IDScheme
}
