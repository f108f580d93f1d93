package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFileResolution(t *testing.T) {
	t.Setenv("FEND_CONFIG_DIR", "/custom/fend")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/fend", "config.toml"), p)

	t.Setenv("FEND_CONFIG_DIR", "")
	p, err = ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "fend", "config.toml"), p)

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	p, err = ConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "fend", "config.toml"), p)
}

func TestHistoryFileResolution(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), "state")
	t.Setenv("FEND_STATE_DIR", stateDir)

	p, err := HistoryFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stateDir, "history"), p)

	// The directory is created on demand.
	info, err := os.Stat(stateDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"prompt = \">>> \"\nprecision-bits = 256\ncolor = true\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ">>> ", cfg.Prompt)
	assert.Equal(t, uint(256), cfg.PrecisionBits)
	assert.True(t, cfg.Color)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("color = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, uint(128), cfg.PrecisionBits)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("prompt = [not toml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("prompt = \"a> \"\n"), 0o644))

	changed := make(chan *Config, 1)
	closer, err := Watch(path, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, os.WriteFile(path, []byte("prompt = \"b> \"\n"), 0o644))

	select {
	case cfg := <-changed:
		assert.Equal(t, "b> ", cfg.Prompt)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}
