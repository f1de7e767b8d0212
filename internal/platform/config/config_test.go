package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipet/finance-api/internal/platform/db"
)

var configKeys = []string{
	"APP_ENV", "HTTP_HOST", "HTTP_PORT", "MARKET_SOURCE", "CATALOG_PATH", "CACHE_TTL",
	"REFRESH_INTERVAL", "CORS_ENABLED", "DB_DRIVER", "REDIS_HOST", "REDIS_DB", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv empties every variable read by FromEnv for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, SourceDatabase, cfg.MarketSource)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.False(t, cfg.CORSEnabled)
	assert.False(t, cfg.Production())
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.False(t, cfg.Redis.Enabled())
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("MARKET_SOURCE", "catalog")
	t.Setenv("CATALOG_PATH", "/etc/finance/catalog.yaml")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("REFRESH_INTERVAL", "0")
	t.Setenv("CORS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, SourceCatalog, cfg.MarketSource)
	assert.Equal(t, "/etc/finance/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Zero(t, cfg.RefreshInterval)
	assert.True(t, cfg.CORSEnabled)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown source", key: "MARKET_SOURCE", value: "api", wantErr: "MARKET_SOURCE"},
		{name: "bad ttl", key: "CACHE_TTL", value: "soon", wantErr: "CACHE_TTL"},
		{name: "bad refresh interval", key: "REFRESH_INTERVAL", value: "hourly", wantErr: "REFRESH_INTERVAL"},
		{name: "negative refresh interval", key: "REFRESH_INTERVAL", value: "-1m", wantErr: "REFRESH_INTERVAL"},
		{name: "bad cors flag", key: "CORS_ENABLED", value: "sometimes", wantErr: "CORS_ENABLED"},
		{name: "bad redis db", key: "REDIS_DB", value: "first", wantErr: "REDIS_DB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=7070\nMARKET_SOURCE=catalog\n"), 0o600))
	t.Setenv("MARKET_SOURCE", "database")
	// Present-but-empty variables count as set for godotenv.
	require.NoError(t, os.Unsetenv("HTTP_PORT"))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7070", cfg.Addr(), "file value fills an empty variable")
	assert.Equal(t, SourceDatabase, cfg.MarketSource, "environment wins over the file")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.NoError(t, err)
}
