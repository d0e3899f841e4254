package es

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
)

// Document is the product as stored in the index
type Document struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int64     `json:"stock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	IndexedAt   time.Time `json:"indexed_at"`
}

func toDocument(p domain.Product) Document {
	return Document{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Stock:       p.Stock,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
		IndexedAt:   time.Now().UTC(),
	}
}

func (d Document) toDomain() (domain.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid product id %q in index: %w", d.ID, err)
	}
	return domain.Product{
		ID:          id,
		SKU:         d.SKU,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Currency:    d.Currency,
		Stock:       d.Stock,
		Rating:      d.Rating,
		CreatedAt:   d.CreatedAt.UTC(),
	}, nil
}
