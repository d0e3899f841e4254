package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/internal/storage/es"
	"github.com/DjordjeVuckovic/storefront/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/storefront/internal/storage/pg"
	"github.com/DjordjeVuckovic/storefront/pkg/server"
)

// Backend bundles a catalog with its health checker and a release func
type Backend struct {
	Catalog storage.Catalog
	Health  server.HealthChecker
	Close   func()
}

// NewCatalog creates the catalog selected by cfg.Type
func NewCatalog(ctx context.Context, cfg StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		catalog, err := pg.NewCatalog(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{Catalog: catalog, Health: pg.NewHealthChecker(pool), Close: pool.Close}, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		catalog, err := es.NewCatalog(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return &Backend{Catalog: catalog, Health: server.NewOkHealthChecker(), Close: func() {}}, nil

	case storage.InMem:
		return &Backend{Catalog: in_mem.NewCatalog(), Health: server.NewOkHealthChecker(), Close: func() {}}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
