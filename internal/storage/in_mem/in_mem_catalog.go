package in_mem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/internal/storage"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

type Catalog struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Product
	schema      *pagination.Schema
}

func NewCatalog() *Catalog {
	return &Catalog{
		storage: make(map[uuid.UUID]domain.Product),
		schema:  storage.ProductSchema(nil),
	}
}

func (s *Catalog) Save(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	product.Normalize(time.Now())

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage[product.ID] = product

	slog.Debug("Saved product to in-memory storage", "sku", product.SKU, "id", product.ID)
	return product.ID, nil
}

func (s *Catalog) SaveBulk(ctx context.Context, products []domain.Product) error {
	now := time.Now()

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, p := range products {
		p.Normalize(now)
		s.storage[p.ID] = p
	}

	slog.Info("Saved products to in-memory storage", "count", len(products))
	return nil
}

func (s *Catalog) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	p, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrProductNotFound(id)
	}
	return &p, nil
}

func (s *Catalog) Schema() *pagination.Schema {
	return s.schema
}

func (s *Catalog) Position(p domain.Product, f pagination.Field) pagination.Position {
	return domain.ProductPosition(p, f)
}

// Fetch walks a snapshot taken under the read lock
func (s *Catalog) Fetch(ctx context.Context, q pagination.Query) ([]domain.Product, error) {
	s.storageLock.RLock()
	snapshot := make([]domain.Product, 0, len(s.storage))
	for _, p := range s.storage {
		snapshot = append(snapshot, p)
	}
	s.storageLock.RUnlock()

	src := pagination.NewSliceSource(s.schema, snapshot, domain.ProductValue, func(p domain.Product) string {
		return p.ID.String()
	})
	return src.Fetch(ctx, q)
}

var _ storage.Catalog = (*Catalog)(nil)
