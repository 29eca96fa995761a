package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TM_ADDR", "TM_DB_PATH", "TM_MEDIA_ROOT", "TM_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/taskmanager.db", cfg.DBPath)
	assert.Equal(t, "media", cfg.MediaRoot)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadDotenvAndOverrides(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("TM_DB_PATH=/tmp/tm.db\nTM_MEDIA_ROOT=/srv/media\nTM_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("TM_MEDIA_ROOT", "/override")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tm.db", cfg.DBPath)
	assert.Equal(t, "/override", cfg.MediaRoot)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadRejectsBadLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("TM_LOG_LEVEL", "loud")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("TM_TEST_KEY", "")
	assert.Equal(t, "fallback", EnvOrDefault("TM_TEST_KEY", "fallback"))

	t.Setenv("TM_TEST_KEY", "value")
	assert.Equal(t, "value", EnvOrDefault("TM_TEST_KEY", "fallback"))
}
