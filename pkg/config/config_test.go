package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "none.env")
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "PLANNER_EDGES", "PLANNER_GRID_SIZE", "LOG_LEVEL", "PLANNER_MAX_EXPANSIONS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Positive(t, cfg.HTTP.MaxConcurrent)
	assert.Equal(t, 100, cfg.Source.GridSize)
	assert.Equal(t, 0, cfg.Search.MaxExpansions)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "250ms")
	t.Setenv("PLANNER_EDGES", "/data/edges.csv")
	t.Setenv("PLANNER_MAX_EXPANSIONS", "5000")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_INCLUDE_CALLER", "true")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.HTTP.RequestTimeout)
	assert.Equal(t, "/data/edges.csv", cfg.Source.EdgeListPath)
	assert.Equal(t, 5000, cfg.Search.MaxExpansions)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.IncludeCaller)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SERVER_PORT", "abc"},
		{"SERVER_PORT", "70000"},
		{"SERVER_READ_TIMEOUT", "soon"},
		{"SERVER_MAX_CONCURRENT", "-1"},
		{"PLANNER_GRID_SIZE", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "PLANNER_OSM_PROFILE"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=foot\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "foot", cfg.Source.OSMProfile)
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=error\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
