package reader

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reflectTarget struct {
	ID        uuid.UUID
	Name      string
	Price     int64
	Rating    float64
	Active    bool
	CreatedAt time.Time
	Released  time.Time
	Note      *string
}

func TestSetFlatField(t *testing.T) {
	var target reflectTarget
	val := reflect.ValueOf(&target).Elem()
	id := uuid.New()

	require.NoError(t, SetFlatField(val, "ID", id.String(), "uuid", ""))
	require.NoError(t, SetFlatField(val, "Name", "Coffee Mug", "string", ""))
	require.NoError(t, SetFlatField(val, "Price", "1299", "int", ""))
	require.NoError(t, SetFlatField(val, "Rating", "4.5", "float", ""))
	require.NoError(t, SetFlatField(val, "Active", "true", "bool", ""))
	require.NoError(t, SetFlatField(val, "CreatedAt", "2024-10-01T12:00:00Z", "datetime", time.RFC3339))
	require.NoError(t, SetFlatField(val, "Released", "2024-10-01", "date", ""))
	require.NoError(t, SetFlatField(val, "Note", "fragile", "", ""))

	assert.Equal(t, id, target.ID)
	assert.Equal(t, "Coffee Mug", target.Name)
	assert.Equal(t, int64(1299), target.Price)
	assert.Equal(t, 4.5, target.Rating)
	assert.True(t, target.Active)
	assert.Equal(t, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), target.CreatedAt)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), target.Released)
	require.NotNil(t, target.Note)
	assert.Equal(t, "fragile", *target.Note)
}

func TestSetFlatField_Errors(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		value     string
		fieldType string
	}{
		{"unknown field", "Missing", "x", "string"},
		{"type mismatch", "Price", "x", "string"},
		{"bad int", "Price", "twelve", "int"},
		{"bad float", "Rating", "high", "float"},
		{"bad uuid", "ID", "nope", "uuid"},
		{"bad datetime", "CreatedAt", "yesterday", "datetime"},
		{"unsupported type", "Name", "x", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target reflectTarget
			err := SetFlatField(reflect.ValueOf(&target).Elem(), tt.path, tt.value, tt.fieldType, time.RFC3339)
			assert.Error(t, err)
		})
	}
}
