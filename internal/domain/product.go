package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
)

const ProductDefaultCurrency = "USD"

type Product struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	// Price is in minor currency units
	Price     int64     `json:"price"`
	Currency  string    `json:"currency"`
	Stock     int64     `json:"stock"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize fills defaults for fields left empty by the caller
func (p *Product) Normalize(now time.Time) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	if p.Currency == "" {
		p.Currency = ProductDefaultCurrency
	}
	p.Currency = strings.ToUpper(p.Currency)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.CreatedAt = p.CreatedAt.UTC()
}

func (p *Product) Validate() error {
	if p.SKU == "" {
		return apperr.NewValidation("sku is required")
	}
	if p.Name == "" {
		return apperr.NewValidation("name is required")
	}
	if p.Price < 0 {
		return apperr.NewValidation("price cannot be negative")
	}
	if p.Stock < 0 {
		return apperr.NewValidation("stock cannot be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return apperr.NewValidation("rating must be between 0 and 5")
	}
	if len(p.Currency) != 3 {
		return apperr.NewValidation("currency must be a 3-letter ISO code")
	}
	return nil
}
