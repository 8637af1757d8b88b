package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsanders-rh/exopolicy/internal/settings"
)

func TestNewSettings(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		s, err := settings.NewSettings("")
		require.NoError(t, err)

		assert.Equal(t, 8080, s.Server.Port)
		assert.Equal(t, 10*time.Second, s.Server.ShutdownTimeout)
		assert.Equal(t, []string{"http://localhost:3000"}, s.Server.AllowedOrigins)
		assert.Equal(t, 100, s.Server.RateLimitRequests)
		assert.Equal(t, "info", s.Logging.Level)
		assert.Equal(t, "cloud_configs.yaml", s.Sources.CloudConfigsPath)
		assert.False(t, s.Sources.Watch)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("WATCH_CONFIG", "true")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.org,https://b.example.org")

		s, err := settings.NewSettings("")
		require.NoError(t, err)
		assert.Equal(t, 9090, s.Server.Port)
		assert.True(t, s.Sources.Watch)
		assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, s.Server.AllowedOrigins)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
logging:
  format: console
sources:
  cloud_configs_path: /etc/exosphere/cloud_configs.json
`), 0o600))

		s, err := settings.NewSettings(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, s.Server.Port)
		assert.Equal(t, "console", s.Logging.Format)
		assert.Equal(t, "/etc/exosphere/cloud_configs.json", s.Sources.CloudConfigsPath)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := settings.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("rejects bad format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := settings.NewSettings("")
		assert.Error(t, err)
	})
}

func TestUsage(t *testing.T) {
	assert.Contains(t, settings.Usage(), "CLOUD_CONFIGS_PATH")
}
