package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

// Reader is an ordered product source the paginator can walk, plus point lookups
type Reader interface {
	pagination.Source[domain.Product]
	// Get returns an *apperr.NotFoundError when no product has the id
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

// Catalog is the full product store
type Catalog interface {
	Reader
	Storer
}

// ProductSchema is the ordering schema shared by every catalog.
// Columns can be overridden per backend.
func ProductSchema(columns map[string]string) *pagination.Schema {
	fields := domain.ProductFields()
	for i, f := range fields {
		if c, ok := columns[f.Name]; ok {
			fields[i].Column = c
		}
	}
	return pagination.NewSchema(fields...)
}

func ErrProductNotFound(id uuid.UUID) error {
	return apperr.NewNotFound("product", id.String())
}
