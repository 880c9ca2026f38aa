package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().BaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, SaveConfig(Config{BaseURL: "https://file.example/api", Timeout: time.Minute}, path))

	t.Setenv("EDU_BASE_URL", "http://localhost:5000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoadConfig_RoundTripsThroughSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	in := Config{BaseURL: "http://localhost:9999", Timeout: 5 * time.Second, DataDir: "/tmp/edu"}
	require.NoError(t, SaveConfig(in, path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in.BaseURL, cfg.BaseURL)
	assert.Equal(t, in.Timeout, cfg.Timeout)
	assert.Equal(t, in.DataDir, cfg.DataDir)
}
