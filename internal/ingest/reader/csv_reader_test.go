package reader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReader_Read(t *testing.T) {
	csvData := `sku,name,price
MUG-1,Coffee Mug,1299
TEE-2,"Shirt, blue",2500`

	reader := NewCSVReader(strings.NewReader(csvData))

	records, err := reader.Read()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, map[string]string{
		"sku":   "MUG-1",
		"name":  "Coffee Mug",
		"price": "1299",
	}, records[0])

	assert.Equal(t, map[string]string{
		"sku":   "TEE-2",
		"name":  "Shirt, blue",
		"price": "2500",
	}, records[1])
}

func TestCSVReader_ReadParallel(t *testing.T) {
	csvData := `sku,name,price
MUG-1,Coffee Mug,1299
TEE-2,Shirt,2500
CAP-3,Cap,900`

	reader := NewCSVReader(strings.NewReader(csvData))

	resultsChan, err := reader.ReadParallel(t.Context(), 2)
	require.NoError(t, err)

	var results []map[string]string
	for res := range resultsChan {
		require.NoError(t, res.Err)
		results = append(results, res.Record)
	}

	assert.Len(t, results, 3)
	assert.Contains(t, results, map[string]string{
		"sku":   "CAP-3",
		"name":  "Cap",
		"price": "900",
	})
}

func TestCSVReader_ReadParallel_MalformedRow(t *testing.T) {
	csvData := `sku,name,price
MUG-1,Coffee Mug,1299
TEE-2
CAP-3,Cap,900`

	reader := NewCSVReader(strings.NewReader(csvData))

	resultsChan, err := reader.ReadParallel(t.Context(), 2)
	require.NoError(t, err)

	var valid []map[string]string
	var errorCount int
	for res := range resultsChan {
		if res.Err != nil {
			errorCount++
			continue
		}
		valid = append(valid, res.Record)
	}

	assert.Len(t, valid, 2)
	assert.Equal(t, 1, errorCount)
}

func TestCSVReader_EmptyInput(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("")).Read()
	assert.Error(t, err)
}
