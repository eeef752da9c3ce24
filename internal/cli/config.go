package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dfb/gmtools/internal/paths"
	"github.com/dfb/gmtools/pkg/types"
)

// config.yaml keys.
const (
	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeySyncStrategy  = "sync_strategy"
	cfgKeyBatchSize     = "batch_size"
	cfgKeyBatchInterval = "batch_interval"
	cfgKeyMaxBytes      = "max_bytes"
	cfgKeyIDScheme      = "id_scheme"
	cfgKeyCatalogFile   = "catalog_file"
	cfgKeyLogLevel      = "log_level"
)

// envLogLevel overrides log_level from config.yaml.
const envLogLevel = "GMTOOLS_LOG_LEVEL"

// fileConfig is what `gmboard init` writes to config.yaml.
type fileConfig struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy"`
	IDScheme     string `yaml:"id_scheme"`
	LogLevel     string `yaml:"log_level"`
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncImmediate)
	v.SetDefault(cfgKeyIDScheme, types.IDSchemeTimestamp)
	v.SetDefault(cfgKeyLogLevel, "warn")
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, err
	}

	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// storeConfig builds the store and service configuration from v, with
// dataDir already resolved.
func storeConfig(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:       v.GetString(cfgKeyBackend),
		DataDir:       dataDir,
		SyncStrategy:  v.GetString(cfgKeySyncStrategy),
		BatchSize:     v.GetInt(cfgKeyBatchSize),
		BatchInterval: v.GetInt(cfgKeyBatchInterval),
		MaxBytes:      v.GetInt64(cfgKeyMaxBytes),
		IDScheme:      v.GetString(cfgKeyIDScheme),
		CatalogFile:   v.GetString(cfgKeyCatalogFile),
	}
}

// writeDefaultConfig creates config.yaml in configDir unless it exists.
// It reports whether a file was written.
func writeDefaultConfig(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&fileConfig{
		Backend:      types.BackendSQLite,
		DataDir:      dataDir,
		SyncStrategy: types.SyncImmediate,
		IDScheme:     types.IDSchemeTimestamp,
		LogLevel:     "warn",
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
