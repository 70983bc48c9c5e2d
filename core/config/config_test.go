package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
	assert.Equal(t, "mysql", cfg.Source.Driver)
	assert.Equal(t, 3306, cfg.Source.Port)
	assert.Equal(t, "postgres", cfg.Destination.Driver)
	assert.Equal(t, 5432, cfg.Destination.Port)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.Equal(t, 500, cfg.Sync.InsertBatchSize)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SOURCE_HOST=legacy-db\nDESTINATION_NAME=meters_v2\nSYNC_WORKERS=8\nSTORAGE_ENABLED=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"SOURCE_HOST", "DESTINATION_NAME", "SYNC_WORKERS", "STORAGE_ENABLED"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "legacy-db", cfg.Source.Host)
	assert.Equal(t, "meters_v2", cfg.Destination.Name)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.True(t, cfg.Storage.Enabled)
}
