package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "0.0.0.0", c.AppHost)
	assert.Equal(t, "5000", c.AppPort)
	assert.Equal(t, 24*7, c.SessionTTLHours)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "templates/*.html", c.TemplateGlob)
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, "info", c.LogLevel)
	// secrets never get defaults
	assert.Empty(t, c.SessionSecret)
	assert.Empty(t, c.DBPassword)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("DB_NAME", "blog_test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	assert.Equal(t, "8081", c.AppPort)
	assert.Equal(t, "from-env", c.SessionSecret)
	assert.Equal(t, "blog_test", c.DBName)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
}

func TestLoadJSONConfigGroupedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"AppPort": "9000", "SessionSecret": "from-json", "SessionTTLHours": 12},
		"database": {"DBHost": "db.internal", "DBName": "blog"},
		"redis": {"RedisHost": "cache.internal", "RedisPort": 6380},
		"log": {"Level": "debug", "MaxBackups": 9}
	}`), 0o644))

	var c AppConfig
	require.NoError(t, loadJSONConfig(path, &c))

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, "from-json", c.SessionSecret)
	assert.Equal(t, 12, c.SessionTTLHours)
	assert.Equal(t, "db.internal", c.DBHost)
	assert.Equal(t, "cache.internal", c.RedisHost)
	assert.Equal(t, 6380, c.RedisPort)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 9, c.LogMaxBackups)
}

func TestLoadJSONConfigMissingFile(t *testing.T) {
	var c AppConfig
	assert.NoError(t, loadJSONConfig(filepath.Join(t.TempDir(), "absent.json"), &c))
	assert.Equal(t, AppConfig{}, c)
}
