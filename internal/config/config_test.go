package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORTFOLIO_SERVER_ADDR", "PORTFOLIO_LOG_LEVEL", "PORTFOLIO_LOG_FORMAT",
		"PORTFOLIO_CONTENT_DIR", "PORTFOLIO_SERVER_ORIGINS", "PORTFOLIO_LOG_LEVELS_HTTP",
		"PORTFOLIO_LOG_LEVELS_LIVE", "SERVER_ADDR", "PORT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.Shutdown)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Content.Dir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	require.NotNil(t, cfg.Catalog)
	assert.Len(t, cfg.Catalog.Projects(), 3)
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  origins: ["https://avaro.dev"]
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://avaro.dev"}, cfg.Server.Origins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	t.Setenv("PORTFOLIO_SERVER_ADDR", "127.0.0.1:7000")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "warn")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLegacyAddrEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	cfg, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)

	t.Setenv("SERVER_ADDR", ":4000")
	cfg, err = LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Server.Addr)

	t.Setenv("PORTFOLIO_SERVER_ADDR", ":5000")
	cfg, err = LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
}

func TestOriginsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_SERVER_ORIGINS", "https://a.example, https://b.example,,")

	cfg, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.Origins)
}

func TestOriginsEnvReplacesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  origins: [\"https://file.example\"]\n"), 0o644))
	t.Setenv("PORTFOLIO_SERVER_ORIGINS", "https://env.example")

	cfg, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://env.example"}, cfg.Server.Origins)
}

func TestComponentLevelsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_LOG_LEVELS_HTTP", "error")
	t.Setenv("PORTFOLIO_LOG_LEVELS_LIVE", "debug")

	cfg, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"http": "error", "live": "debug"}, cfg.Log.Levels)
}

func TestEnvKeyValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"PORTFOLIO_SERVER_ADDR", "server.addr"},
		{"PORTFOLIO_LOG_MAXSIZE", "log.maxsize"},
		{"PORTFOLIO_CONTENT_DIR", "content.dir"},
		{"PORTFOLIO_LOG_LEVELS_HTTP", "log.levels.http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, _ := envKeyValue(tt.name, "x")
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestContentDirOverride(t *testing.T) {
	clearEnv(t)
	content := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(content, "skills.json"),
		[]byte(`{"skills":[{"category":"Solo","items":["uno"]}]}`), 0o644))
	t.Setenv("PORTFOLIO_CONTENT_DIR", content)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, content, cfg.Content.Dir)
	require.Len(t, cfg.Catalog.Skills(), 1)
	assert.Equal(t, "Solo", cfg.Catalog.Skills()[0].Category)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"addr without port", func(c *Config) { c.Server.Addr = "localhost" }},
		{"negative shutdown", func(c *Config) { c.Server.Shutdown = -time.Second }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"negative maxsize", func(c *Config) { c.Log.MaxSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yml")

	original := DefaultConfig()
	original.Server.Addr = ":9100"
	original.Log.Level = "debug"
	require.NoError(t, original.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", loaded.Server.Addr)
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.Equal(t, original.Server.Shutdown, loaded.Server.Shutdown)
}
