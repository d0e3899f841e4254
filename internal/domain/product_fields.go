package domain

import (
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

// Product ordering fields; created_at is the default
var (
	ProductFieldCreatedAt = pagination.Field{Name: "created_at", Kind: pagination.KindTime}
	ProductFieldID        = pagination.Field{Name: "id", Kind: pagination.KindUUID}
	ProductFieldSKU       = pagination.Field{Name: "sku", Kind: pagination.KindString}
	ProductFieldName      = pagination.Field{Name: "name", Kind: pagination.KindString}
	ProductFieldPrice     = pagination.Field{Name: "price", Kind: pagination.KindInt}
	ProductFieldStock     = pagination.Field{Name: "stock", Kind: pagination.KindInt}
	ProductFieldRating    = pagination.Field{Name: "rating", Kind: pagination.KindFloat}
)

// ProductFields returns the sortable product fields in schema order
func ProductFields() []pagination.Field {
	return []pagination.Field{
		ProductFieldCreatedAt,
		ProductFieldID,
		ProductFieldSKU,
		ProductFieldName,
		ProductFieldPrice,
		ProductFieldStock,
		ProductFieldRating,
	}
}

// ProductValue returns the ordering value of p for f
func ProductValue(p Product, f pagination.Field) any {
	switch f.Name {
	case ProductFieldID.Name:
		return p.ID
	case ProductFieldSKU.Name:
		return p.SKU
	case ProductFieldName.Name:
		return p.Name
	case ProductFieldPrice.Name:
		return p.Price
	case ProductFieldStock.Name:
		return p.Stock
	case ProductFieldRating.Name:
		return p.Rating
	default:
		return p.CreatedAt
	}
}

// ProductPosition is the cursor position of p under f, tie-broken on the product id
func ProductPosition(p Product, f pagination.Field) pagination.Position {
	return pagination.Position{Value: ProductValue(p, f), ID: p.ID.String()}
}
