package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/storefront/internal/storage/factory"
	"github.com/DjordjeVuckovic/storefront/pkg/cache"
	"github.com/DjordjeVuckovic/storefront/pkg/config/env"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type StorefrontConfig struct {
	StorageConfig    factory.StorageConfig
	PaginationConfig pagination.Config
	CacheConfig      cache.Config
	LogLevel         slog.Level
}

func (as *AppConfig) LoadDotEnv() {
	err := env.LoadDotEnv(as.ENV, "cmd/storefront_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}
}

func (as *AppConfig) Load() (*StorefrontConfig, error) {
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	pagCfg, err := loadPaginationConfig()
	if err != nil {
		return nil, err
	}

	cacheCfg, err := loadCacheConfig()
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return &StorefrontConfig{
		StorageConfig:    *storageCfg,
		PaginationConfig: pagCfg,
		CacheConfig:      cacheCfg,
		LogLevel:         level,
	}, nil
}

func loadPaginationConfig() (pagination.Config, error) {
	cfg := pagination.DefaultConfig()

	var err error
	if cfg.DefaultLimit, err = intEnv("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit); err != nil {
		return cfg, err
	}
	if cfg.MaxLimit, err = intEnv("PAGINATION_MAX_LIMIT", cfg.MaxLimit); err != nil {
		return cfg, err
	}

	return cfg.Normalize(), nil
}

func loadCacheConfig() (cache.Config, error) {
	cfg := cache.Config{
		Backend:   cache.Backend(strings.ToLower(envOr("CACHE_BACKEND", string(cache.BackendMemory)))),
		TTL:       cache.DefaultTTL,
		KeyPrefix: envOr("CACHE_KEY_PREFIX", "storefront"),
		Redis: cache.RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return cfg, fmt.Errorf("invalid CACHE_TTL %q: must be a positive duration", v)
		}
		cfg.TTL = ttl
	}

	var err error
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.MaxEntries, err = intEnv("CACHE_MAX_ENTRIES", 0); err != nil {
		return cfg, err
	}
	if cfg.MaxEntries < 0 {
		return cfg, fmt.Errorf("invalid CACHE_MAX_ENTRIES %d: must not be negative", cfg.MaxEntries)
	}

	switch cfg.Backend {
	case cache.BackendNone, cache.BackendMemory, cache.BackendRedis:
	default:
		return cfg, fmt.Errorf("invalid CACHE_BACKEND %q, expected one of %v",
			cfg.Backend, []cache.Backend{cache.BackendNone, cache.BackendMemory, cache.BackendRedis})
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, v)
	}
	return n, nil
}
