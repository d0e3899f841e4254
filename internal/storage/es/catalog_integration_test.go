package es

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/storefront/internal/apperr"
	"github.com/DjordjeVuckovic/storefront/internal/domain"
	"github.com/DjordjeVuckovic/storefront/pkg/pagination"
	pkgtesting "github.com/DjordjeVuckovic/storefront/pkg/testing"
)

func TestCatalog_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping elasticsearch integration test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	c, err := NewCatalog(ctx, ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "products_test",
	})
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 12)
	for i := range products {
		products[i] = domain.Product{
			ID:        uuid.New(),
			SKU:       fmt.Sprintf("SKU-%02d", i),
			Name:      fmt.Sprintf("Product %02d", i),
			Price:     int64(100 * (i%3 + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
	}
	require.NoError(t, c.SaveBulk(ctx, products))
	_, err = c.client.Indices.Refresh().Index(c.indexName).Do(ctx)
	require.NoError(t, err)

	got, err := c.Get(ctx, products[3].ID)
	require.NoError(t, err)
	assert.Equal(t, "SKU-03", got.SKU)

	_, err = c.Get(ctx, uuid.New())
	var nf *apperr.NotFoundError
	assert.ErrorAs(t, err, &nf)

	p := pagination.New[domain.Product](pagination.DefaultConfig())
	for _, ordering := range []string{"created_at", "price", "name"} {
		seen := map[uuid.UUID]bool{}
		cursor := ""
		for {
			page, err := p.GetPage(ctx, c, pagination.CursorRequest{Limit: 5, Ordering: ordering, Cursor: cursor})
			require.NoError(t, err)
			for _, it := range page.Items {
				assert.False(t, seen[it.ID], "ordering=%s duplicate %s", ordering, it.SKU)
				seen[it.ID] = true
			}
			if page.Meta.NextCursor == nil {
				break
			}
			cursor = *page.Meta.NextCursor
		}
		assert.Len(t, seen, len(products), ordering)
	}
}
