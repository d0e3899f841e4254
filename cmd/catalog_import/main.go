package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/DjordjeVuckovic/storefront/internal/ingest"
	"github.com/DjordjeVuckovic/storefront/internal/ingest/mapping"
	"github.com/DjordjeVuckovic/storefront/internal/ingest/reader"
	"github.com/DjordjeVuckovic/storefront/internal/storage/factory"
)

func main() {
	cfg, err := NewAppConfig().Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("catalog import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *CatalogImportConfig) error {
	productMapping, err := loadMapping(cfg.MappingPath)
	if err != nil {
		return err
	}
	mapper, err := ingest.NewProductMapper(productMapping)
	if err != nil {
		return fmt.Errorf("invalid mapping: %w", err)
	}

	dataFile, err := os.Open(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer dataFile.Close()

	rawReader, err := newReader(cfg.CatalogPath, dataFile)
	if err != nil {
		return err
	}

	backend, err := factory.NewCatalog(ctx, cfg.StorageConfig)
	if err != nil {
		return fmt.Errorf("failed to create storer: %w", err)
	}
	defer backend.Close()

	var opts []ingest.PipelineOption
	if cfg.BulkOptions.Enabled {
		opts = append(opts, ingest.WithBulk(cfg.BulkOptions.Size))
	}

	slog.Info("Creating pipeline", "storageType", cfg.StorageConfig.Type, "catalog", cfg.CatalogPath)
	pipeline := ingest.NewPipeline(ingest.NewProductCollector(rawReader, mapper), backend.Catalog, opts...)

	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	stats := pipeline.Stats()
	if stats.Processed == 0 && stats.Failed > 0 {
		return fmt.Errorf("no products imported, %d records failed", stats.Failed)
	}
	return nil
}

func loadMapping(path string) (*mapping.ProductMapping, error) {
	if path == "" {
		return mapping.Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	defer file.Close()

	return mapping.NewYAMLConfigLoader(file).Load(true)
}

func newReader(path string, r io.Reader) (reader.RawParallelReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return reader.NewCSVReader(r), nil
	case ".yaml", ".yml":
		return reader.NewYAMLReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported catalog file %q: expected .csv, .yaml or .yml", path)
	}
}
