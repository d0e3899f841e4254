// Package main Storefront API
// @title Storefront API
// @version 1.0
// @description Product catalog with cursor pagination and response caching
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/storefront/internal/api/router"
	"github.com/DjordjeVuckovic/storefront/internal/api/server"
	"github.com/DjordjeVuckovic/storefront/internal/storage/factory"
	"github.com/DjordjeVuckovic/storefront/pkg/cache"
)

const startupTimeout = 30 * time.Second

func main() {
	appSettings := NewAppConfig()
	appSettings.LoadDotEnv()

	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	backend, err := factory.NewCatalog(startCtx, cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create catalog storage", "error", err, "type", cfg.StorageConfig.Type)
		os.Exit(1)
	}
	defer backend.Close()

	s := server.New(sCfg, backend.Health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Storefront API is running")
	})

	store, err := cache.NewStore(startCtx, cfg.CacheConfig)
	if err != nil {
		slog.Error("Failed to create cache store", "error", err, "backend", cfg.CacheConfig.Backend)
		os.Exit(1)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}
	slog.Info("Cache configured", "backend", cfg.CacheConfig.Backend, "ttl", cfg.CacheConfig.TTL)

	catalogRouter := router.NewCatalogRouter(s.Echo, backend.Catalog,
		router.WithPagination(cfg.PaginationConfig),
		router.WithCache(store, cfg.CacheConfig),
	)
	catalogRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
