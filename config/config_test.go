package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/goldscore/config"
)

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://api.tradeskillmaster.com/v1/item", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "Config.json", cfg.Paths.Settings)
	assert.Equal(t, "TSMData.json", cfg.Paths.RawResponse)
	assert.Equal(t, "Imports.txt", cfg.Paths.ImportList)
	assert.Equal(t, "goldscore.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_YAMLFile(t *testing.T) {
	raw := `
api:
  base_url: http://localhost:9999/v1/item
  timeout_seconds: 5
paths:
  import_list: /tmp/out.txt
storage:
  dsn: ":memory:"
log:
  level: debug
  format: json
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/v1/item", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
	assert.Equal(t, "/tmp/out.txt", cfg.Paths.ImportList)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Lo no declarado cae a defaults
	assert.Equal(t, "Config.json", cfg.Paths.Settings)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not a map"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TSM_API_BASE", "http://127.0.0.1:8080/v1/item")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "http://127.0.0.1:8080/v1/item", cfg.API.BaseURL)
}

func TestConfig_Timeout(t *testing.T) {
	cfg := &config.Config{API: config.APIConfig{TimeoutSeconds: 12}}
	assert.Equal(t, 12*time.Second, cfg.Timeout())
}
