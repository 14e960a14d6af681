package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.API.Timeout())
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.NotEmpty(t, cfg.State.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BUGDECK_API_BASE_URL", "https://tracker.internal/api")
	t.Setenv("BUGDECK_HTTP_TIMEOUT", "5")
	t.Setenv("BUGDECK_STATE_DIR", "/tmp/bugdeck-test")
	t.Setenv("BUGDECK_LOG_LEVEL", "debug")
	t.Setenv("BUGDECK_TRANSPORT_MODE", "http")
	t.Setenv("BUGDECK_SERVER_HOST", "127.0.0.1")
	t.Setenv("BUGDECK_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://tracker.internal/api", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout())
	require.Equal(t, "/tmp/bugdeck-test", cfg.State.Dir)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("BUGDECK_HTTP_TIMEOUT", "thirty")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
api:
  base_url: https://tracker.example.com/api
  timeout_seconds: 10
log:
  level: warn
transport:
  mode: http
server:
  port: 7070
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("BUGDECK_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://tracker.example.com/api", cfg.API.BaseURL)
	require.Equal(t, 10*time.Second, cfg.API.Timeout())
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://from-file/api\n"), 0o644))
	t.Setenv("BUGDECK_CONFIG_PATH", path)
	t.Setenv("BUGDECK_API_BASE_URL", "https://from-env/api")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://from-env/api", cfg.API.BaseURL)
}
