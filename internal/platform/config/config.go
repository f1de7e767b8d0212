// Package config loads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/felipet/finance-api/internal/platform/db"
	"github.com/felipet/finance-api/internal/platform/logger"
	"github.com/felipet/finance-api/internal/platform/redis"
)

// Market sources.
const (
	SourceDatabase = "database"
	SourceCatalog  = "catalog"
)

const defaultRefreshInterval = 5 * time.Minute

// Config is the complete application configuration.
type Config struct {
	AppEnv       string
	HTTPHost     string
	HTTPPort     string
	MarketSource string
	CatalogPath  string
	CacheTTL     time.Duration
	// RefreshInterval is how often the server rebuilds its market snapshots.
	// Zero disables refreshing.
	RefreshInterval time.Duration
	CORSEnabled     bool

	DB    db.Config
	Redis redis.Config
	Log   logger.Config
}

// Addr returns the HTTP listen address.
func (c Config) Addr() string {
	return c.HTTPHost + ":" + c.HTTPPort
}

// Production reports whether the application runs in production mode.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads the given .env files, or .env when none is given, and then the
// environment. Variables already set in the environment win over the files. A
// missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (Config, error) {
	cfg := Config{
		AppEnv:          getenv("APP_ENV", "development"),
		HTTPHost:        getenv("HTTP_HOST", "0.0.0.0"),
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		MarketSource:    getenv("MARKET_SOURCE", SourceDatabase),
		CatalogPath:     getenv("CATALOG_PATH", "catalog.yaml"),
		RefreshInterval: defaultRefreshInterval,
		DB:              db.LoadConfigFromEnv(),
		Log:             logger.LoadConfigFromEnv(),
	}

	switch cfg.MarketSource {
	case SourceDatabase, SourceCatalog:
	default:
		return Config{}, fmt.Errorf("MARKET_SOURCE must be %q or %q, got %q", SourceDatabase, SourceCatalog, cfg.MarketSource)
	}

	var err error
	if cfg.Redis, err = redis.LoadConfigFromEnv(); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if cfg.CacheTTL, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
		}
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if cfg.RefreshInterval, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		if cfg.RefreshInterval < 0 {
			return Config{}, fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", v)
		}
	}
	if v := os.Getenv("CORS_ENABLED"); v != "" {
		if cfg.CORSEnabled, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("CORS_ENABLED: %w", err)
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
