package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalogData = `
products:
  - sku: MUG-1
    name: Coffee Mug
    price: 1299
    rating: 4.5
    created_at: 2024-03-01T10:00:00Z
  - sku: TEE-2
    name: Shirt
    price: 2500
`

func TestYAMLReader_Read(t *testing.T) {
	records, err := NewYAMLReader(strings.NewReader(yamlCatalogData)).Read()

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, map[string]string{
		"sku":        "MUG-1",
		"name":       "Coffee Mug",
		"price":      "1299",
		"rating":     "4.5",
		"created_at": "2024-03-01T10:00:00Z",
	}, records[0])
}

func TestYAMLReader_ReadParallel(t *testing.T) {
	ch, err := NewYAMLReader(strings.NewReader(yamlCatalogData)).ReadParallel(t.Context(), 4)
	require.NoError(t, err)

	var skus []string
	for res := range ch {
		require.NoError(t, res.Err)
		skus = append(skus, res.Record["sku"])
	}
	assert.Equal(t, []string{"MUG-1", "TEE-2"}, skus)
}

func TestYAMLReader_Empty(t *testing.T) {
	records, err := NewYAMLReader(strings.NewReader("")).Read()

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestYAMLReader_Malformed(t *testing.T) {
	_, err := NewYAMLReader(strings.NewReader("products: [unclosed")).Read()
	assert.Error(t, err)
}
