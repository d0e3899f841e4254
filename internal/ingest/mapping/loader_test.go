package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validMapping = `
kind: ProductMapping
version: v1
metadata:
  name: "Supplier feed"
dataset: supplier
fieldMappings:
  - source: "Article No"
    target: "SKU"
    required: true
  - source: "Unit Price"
    sourceType: "int"
    target: "Price"
dateFormat: "2006-01-02 15:04"
`

func TestYAMLConfigLoader_Load(t *testing.T) {
	cfg, err := NewYAMLConfigLoader(strings.NewReader(validMapping)).Load(true)

	require.NoError(t, err)
	assert.Equal(t, "ProductMapping", cfg.Kind)
	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, "Supplier feed", cfg.Metadata.Name)
	assert.Equal(t, "supplier", cfg.Dataset)
	require.Len(t, cfg.FieldMappings, 2)
	assert.Equal(t, FieldMapping{Source: "Article No", Target: "SKU", Required: true}, cfg.FieldMappings[0])
	assert.Equal(t, "2006-01-02 15:04", cfg.DateFormat)
}

func TestYAMLConfigLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validMapping), 0o644))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, err := NewYAMLConfigLoader(file).Load(true)
	require.NoError(t, err)
	assert.Len(t, cfg.FieldMappings, 2)
}

func TestYAMLConfigLoader_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "wrong field mappings key",
			yaml: `
kind: ProductMapping
version: v1
metadata:
  name: x
dataset: x
field_mappings:
  - source: sku
    target: SKU
`,
		},
		{
			name: "missing target",
			yaml: `
kind: ProductMapping
version: v1
metadata:
  name: x
dataset: x
fieldMappings:
  - source: sku
`,
		},
		{
			name: "missing kind",
			yaml: `
version: v1
metadata:
  name: x
dataset: x
fieldMappings:
  - source: sku
    target: SKU
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLConfigLoader(strings.NewReader(tt.yaml)).Load(true)
			assert.Error(t, err)
		})
	}
}

func TestYAMLConfigLoader_SkipValidation(t *testing.T) {
	cfg, err := NewYAMLConfigLoader(strings.NewReader("kind: ProductMapping\n")).Load(false)

	require.NoError(t, err)
	assert.Empty(t, cfg.FieldMappings)
}

func TestDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
