package pg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
)

func TestBuildKeysetQuery(t *testing.T) {
	tieID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

	tests := []struct {
		name     string
		query    pagination.Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "first page forward",
			query:    pagination.Query{Field: withColumn(domain.ProductFieldPrice), Direction: pagination.Forward, Limit: 11},
			wantSQL:  "SELECT " + productColumns + " FROM products ORDER BY price ASC, id ASC LIMIT $1",
			wantArgs: []any{11},
		},
		{
			name: "after position forward",
			query: pagination.Query{
				Field:     withColumn(domain.ProductFieldPrice),
				Direction: pagination.Forward,
				After:     &pagination.Position{Value: int64(1299), ID: tieID.String()},
				Limit:     11,
			},
			wantSQL:  "SELECT " + productColumns + " FROM products WHERE (price, id) > ($1, $2) ORDER BY price ASC, id ASC LIMIT $3",
			wantArgs: []any{int64(1299), tieID, 11},
		},
		{
			name: "after position backward",
			query: pagination.Query{
				Field:     withColumn(domain.ProductFieldName),
				Direction: pagination.Backward,
				After:     &pagination.Position{Value: "Mug", ID: tieID.String()},
				Limit:     5,
			},
			wantSQL:  "SELECT " + productColumns + " FROM products WHERE (name, id) < ($1, $2) ORDER BY name DESC, id DESC LIMIT $3",
			wantArgs: []any{"Mug", tieID, 5},
		},
		{
			name: "position without tie-break id",
			query: pagination.Query{
				Field:     withColumn(domain.ProductFieldStock),
				Direction: pagination.Forward,
				After:     &pagination.Position{Value: int64(3)},
				Limit:     5,
			},
			wantSQL:  "SELECT " + productColumns + " FROM products WHERE stock > $1 ORDER BY stock ASC, id ASC LIMIT $2",
			wantArgs: []any{int64(3), 5},
		},
		{
			name: "ordering by id",
			query: pagination.Query{
				Field:     withColumn(domain.ProductFieldID),
				Direction: pagination.Forward,
				After:     &pagination.Position{Value: tieID, ID: tieID.String()},
				Limit:     2,
			},
			wantSQL:  "SELECT " + productColumns + " FROM products WHERE id > $1 ORDER BY id ASC LIMIT $2",
			wantArgs: []any{tieID, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildKeysetQuery(tt.query)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func withColumn(f pagination.Field) pagination.Field {
	f.Column = f.Name
	return f
}
