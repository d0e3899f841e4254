package testing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		assert.Regexp(t, `\.up\.sql$`, f)
	}
	assert.IsNonDecreasing(t, files)
	assert.Equal(t, "001_create_products.up.sql", filepath.Base(files[0]))
}
