package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
)

// Storer persists products. Save replaces an existing product with the same id.
type Storer interface {
	Save(ctx context.Context, product domain.Product) (uuid.UUID, error)
	SaveBulk(ctx context.Context, products []domain.Product) error
}

type Type string

const (
	ES    Type = "es"
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
