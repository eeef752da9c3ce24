package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/gmtools", got)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		old := homeDir
		homeDir = func() (string, error) { return "/home/gm", nil }
		t.Cleanup(func() { homeDir = old })

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/gm/.config/gmtools", got)
	})

	t.Run("no home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		old := homeDir
		homeDir = func() (string, error) { return "", errors.New("no home") }
		t.Cleanup(func() { homeDir = old })

		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestDefaultConfigDir_Other(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("non-linux test")
	}
	old := userConfigDir
	userConfigDir = func() (string, error) { return "/Users/gm/Library/Application Support", nil }
	t.Cleanup(func() { userConfigDir = old })

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/Users/gm/Library/Application Support", AppName), got)
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		env    string
		want   string
		suffix string
	}{
		{name: "flag wins", flag: "/flag/config", env: "/env/config", want: "/flag/config"},
		{name: "env", env: "/env/config", want: "/env/config"},
		{name: "platform default", suffix: AppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, tt.env)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, tt.suffix, filepath.Base(got))
			}
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	old := getwd
	getwd = func() (string, error) { return "/work", nil }
	t.Cleanup(func() { getwd = old })

	tests := []struct {
		name   string
		flag   string
		config string
		env    string
		want   string
	}{
		{name: "flag wins", flag: "/flag/data", config: "/config/data", env: "/env/data", want: "/flag/data"},
		{name: "config over env", config: "/config/data", env: "/env/data", want: "/config/data"},
		{name: "env", env: "/env/data", want: "/env/data"},
		{name: "working directory", want: "/work/.gmtools-db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.env)
			got, err := ResolveDataDir(tt.flag, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	t.Setenv(EnvDataDir, "")

	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), got)

	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), got)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err = ResolveDataDir("boards", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "boards"), got)
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/gm", "config.yaml"), ConfigFile("/etc/gm"))
}
