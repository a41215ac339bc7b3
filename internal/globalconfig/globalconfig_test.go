package globalconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "localhost:5001", cfg.Addr)
	assert.Equal(t, ".zip", cfg.Extension)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_ParsesYAMLAndFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crate.yml")
	body := "data_dir: " + filepath.Join(dir, "pkgs") + "\naddr: 127.0.0.1:9000\nshutdown_timeout: 2s\nmax_upload_bytes: 1024\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkgs"), cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, ".zip", cfg.Extension)
	assert.Equal(t, "http://localhost:5001", cfg.StoreURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yml")
	require.NoError(t, os.WriteFile(path, []byte("extension: .tar\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".tar", cfg.Extension)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfigPath, "")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.DataDir = filepath.Join(home, "artifacts")
	cfg.Addr = ":7000"
	require.NoError(t, Save(cfg))

	raw, err := os.ReadFile(filepath.Join(home, configDir, configFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "~/artifacts")

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", got.Addr)
	assert.Equal(t, filepath.Join(home, "artifacts"), got.DataDir)
}
