package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/storefront/internal/storage/factory"
	"github.com/DjordjeVuckovic/storefront/pkg/config/env"
)

const defaultBulkSize = 500

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type CatalogImportConfig struct {
	CatalogPath string
	// MappingPath is optional; without it columns map to product fields by name
	MappingPath string
	BulkOptions *struct {
		Enabled bool
		Size    int
	}
	factory.StorageConfig
}

func (as *AppConfig) Load() (*CatalogImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/catalog_import/.env", "cmd/catalog_import/pg.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	catalogPath := os.Getenv("CATALOG_PATH")
	if catalogPath == "" {
		slog.Error("CATALOG_PATH environment variable is not set")
		return nil, fmt.Errorf("CATALOG_PATH environment variable is not set")
	}

	bulkSizeNum := defaultBulkSize
	if v := os.Getenv("BULK_SIZE"); v != "" {
		bulkSizeNum, err = strconv.Atoi(v)
		if err != nil || bulkSizeNum < 1 {
			return nil, fmt.Errorf("invalid BULK_SIZE %q: must be a positive number", v)
		}
	}

	cfg := &CatalogImportConfig{
		CatalogPath: catalogPath,
		MappingPath: os.Getenv("MAPPING_CONFIG_PATH"),
		BulkOptions: &struct {
			Enabled bool
			Size    int
		}{
			Enabled: os.Getenv("BULK_ENABLED") != "false",
			Size:    bulkSizeNum,
		},
		StorageConfig: *storageCfg,
	}

	return cfg, nil
}
