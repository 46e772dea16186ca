package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwrk-planet/aichat/pkg/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `
http:
  addr: ":9000"
  readTimeout: 5s
upstream:
  baseURL: "http://api.internal:8000"
  timeout: 3s
session:
  ttl: 2h
ui:
  debug: true
cors:
  allowedOrigins: ["http://localhost:5173"]
logging:
  env: prod
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout, "default kept")
	assert.Equal(t, "http://api.internal:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Upstream.HealthTimeout)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.UI.Debug)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)

	lc, err := cfg.Logging.ToLoggerConfig()
	require.NoError(t, err)
	assert.Equal(t, logger.EnvProd, lc.Env)
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, "aichat-web", lc.Service)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":7000\"\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestLoad_DefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8501", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10000, cfg.Session.MaxSessions)
	assert.Equal(t, "AI Chat Assistant", cfg.UI.Title)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad scheme":   "upstream:\n  baseURL: \"ftp://x\"\n",
		"no host":      "upstream:\n  baseURL: \"http://\"\n",
		"short ttl":    "session:\n  ttl: 10s\n",
		"negative max": "session:\n  maxSessions: -1\n",
		"bad level":    "logging:\n  level: loud\n",
		"broken yaml":  "http: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
