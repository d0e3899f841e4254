package pagination

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCursor(t *testing.T) {
	tests := []struct {
		name        string
		cursor      Cursor
		wantErr     bool
		errContains string
	}{
		{
			name:   "value and field",
			cursor: Cursor{Value: "10", Field: "id"},
		},
		{
			name:   "with tie-break id",
			cursor: Cursor{Value: "1999", Field: "price", ID: "0b1c"},
		},
		{
			name:        "empty field",
			cursor:      Cursor{Value: "10"},
			wantErr:     true,
			errContains: "field cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeCursor(tt.cursor)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, encoded)
		})
	}
}

func TestEncodeCursor_WireShape(t *testing.T) {
	encoded, err := EncodeCursor(Cursor{Value: "10", Field: "id"})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, map[string]string{"value": "10", "field": "id"}, fields)
}

func TestDecodeCursor(t *testing.T) {
	legacy := base64.StdEncoding.EncodeToString([]byte(`{"value": "42", "field": "id"}`))
	urlSafe := base64.URLEncoding.EncodeToString([]byte(`{"value":"??>>","field":"name"}`))

	tests := []struct {
		name        string
		encoded     string
		want        *Cursor
		wantErr     bool
		errContains string
	}{
		{
			name:    "empty string returns nil",
			encoded: "",
		},
		{
			name:    "legacy shape without id",
			encoded: legacy,
			want:    &Cursor{Value: "42", Field: "id"},
		},
		{
			name:    "url-safe alphabet",
			encoded: urlSafe,
			want:    &Cursor{Value: "??>>", Field: "name"},
		},
		{
			name:        "invalid base64",
			encoded:     "not-valid-base64!!!",
			wantErr:     true,
			errContains: "decode cursor",
		},
		{
			name:        "invalid JSON",
			encoded:     "aW52YWxpZC1qc29u", // base64 of "invalid-json"
			wantErr:     true,
			errContains: "unmarshal cursor",
		},
		{
			name:        "missing field",
			encoded:     base64.StdEncoding.EncodeToString([]byte(`{"value":"1"}`)),
			wantErr:     true,
			errContains: "field cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeCursor(tt.encoded)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, decoded)
		})
	}
}

func TestCursorRoundtrip(t *testing.T) {
	cursors := []Cursor{
		{Value: "10", Field: "id"},
		{Value: "", Field: "name"},
		{Value: "héllo wörld / +=", Field: "name", ID: "7"},
		{Value: "2024-03-01T10:00:00.123456789Z", Field: "created_at", ID: "123e4567-e89b-12d3-a456-426614174000"},
	}

	for _, c := range cursors {
		encoded, err := EncodeCursor(c)
		require.NoError(t, err)

		decoded, err := DecodeCursor(encoded)
		require.NoError(t, err)
		assert.Equal(t, c, *decoded)
	}
}

func TestResolvePosition(t *testing.T) {
	id := Field{Name: "id", Column: "id", Kind: KindInt}

	t.Run("matching field", func(t *testing.T) {
		token, err := EncodeCursor(Cursor{Value: "10", Field: "id", ID: "0010"})
		require.NoError(t, err)

		pos, err := resolvePosition(id, token)
		require.NoError(t, err)
		assert.Equal(t, &Position{Value: int64(10), ID: "0010"}, pos)
	})

	t.Run("token for another field", func(t *testing.T) {
		token, err := EncodeCursor(Cursor{Value: "abc", Field: "name"})
		require.NoError(t, err)

		pos, err := resolvePosition(id, token)
		assert.Error(t, err)
		assert.Nil(t, pos)
	})

	t.Run("value of the wrong kind", func(t *testing.T) {
		token, err := EncodeCursor(Cursor{Value: "abc", Field: "id"})
		require.NoError(t, err)

		pos, err := resolvePosition(id, token)
		assert.Error(t, err)
		assert.Nil(t, pos)
	})
}
