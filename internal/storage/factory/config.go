package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/internal/storage/es"
	"github.com/DjordjeVuckovic/storefront/internal/storage/pg"
	"github.com/DjordjeVuckovic/storefront/pkg/stringsutil"
)

type StorageConfig struct {
	storage.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

// LoadEnv reads the storage configuration; STORAGE_TYPE defaults to in_mem
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Info("STORAGE_TYPE is not set, using in-memory storage")
		storageType = storage.InMem
	}
	if storageType != storage.ES && storageType != storage.PG && storageType != storage.InMem {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType,
			[]storage.Type{storage.ES, storage.PG, storage.InMem})
	}

	var esCfg *es.ClientConfig
	if storageType == storage.ES {
		esCfg = &es.ClientConfig{
			Addresses: stringsutil.SplitAndTrim(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if esCfg.IndexName == "" {
			esCfg.IndexName = "products"
		}
		if len(esCfg.Addresses) == 0 {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: ES_ADDRESSES is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storageType == storage.PG {
		pgCfg = &pg.PoolConfig{
			ConnStr: os.Getenv("PG_CONNECTION_STRING"),
		}
		if pgCfg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if v := os.Getenv("PG_MAX_CONNS"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS %q: must be a positive number", v)
			}
			pgCfg.MaxConns = int32(n)
		}
	}

	return &StorageConfig{
		Type: storageType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}
