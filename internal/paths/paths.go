// Package paths resolves where gmtools keeps its configuration and its
// board store.
//
// Config directory: --config-dir flag > GMTOOLS_CONFIG_DIR > platform default.
// Data directory:   --data-dir flag > config.yaml data_dir > GMTOOLS_DATA_DIR
// > ./.gmtools-db.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under platform config/data roots.
const AppName = "gmtools"

// DefaultDataDirName is the working-directory relative data directory.
const DefaultDataDirName = ".gmtools-db"

// Environment overrides.
const (
	EnvConfigDir = "GMTOOLS_CONFIG_DIR"
	EnvDataDir   = "GMTOOLS_DATA_DIR"
)

// ConfigFileName is the name of the config file inside the config directory.
const ConfigFileName = "config.yaml"

// Overridden in tests.
var (
	homeDir       = os.UserHomeDir
	userConfigDir = os.UserConfigDir
	getwd         = os.Getwd
)

// xdgDir returns $xdgVar/gmtools on linux, falling back to
// ~/<fallback...>/gmtools. Elsewhere it uses os.UserConfigDir.
func xdgDir(xdgVar string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/gmtools or ~/.config/gmtools on linux, the user config
// directory elsewhere.
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ResolveConfigDir applies flag > env > platform default.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config file > env > ./.gmtools-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config file path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}
