package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

// ProductRequest is the body of create and replace calls
type ProductRequest struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	Stock       int64   `json:"stock"`
	Rating      float64 `json:"rating"`
	// CreatedAt is set by the server when omitted
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (r ProductRequest) ToDomain(id uuid.UUID) domain.Product {
	p := domain.Product{
		ID:          id,
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Stock:       r.Stock,
		Rating:      r.Rating,
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	}
	return p
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int64     `json:"stock"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Stock:       p.Stock,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}
}

type ProductPage = pagination.Page[ProductResponse]

func NewProductPage(p *pagination.Page[domain.Product]) *ProductPage {
	return pagination.MapPage(p, NewProductResponse)
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
