package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Cursor is the decoded form of an opaque page token.
// ID is the tie-break key of the boundary item; tokens issued without it are still accepted.
type Cursor struct {
	Value string `json:"value"`
	Field string `json:"field"`
	ID    string `json:"id,omitempty"`
}

// EncodeCursor converts a Cursor to a base64-encoded string
func EncodeCursor(c Cursor) (string, error) {
	if c.Field == "" {
		return "", fmt.Errorf("cursor field cannot be empty")
	}

	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeCursor parses a base64-encoded cursor string.
// Both the standard and the URL-safe alphabet are accepted.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		var urlErr error
		b, urlErr = base64.URLEncoding.DecodeString(s)
		if urlErr != nil {
			return nil, fmt.Errorf("failed to decode cursor: %w", err)
		}
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor: %w", err)
	}

	if c.Field == "" {
		return nil, fmt.Errorf("invalid cursor: field cannot be empty")
	}

	return &c, nil
}

// Position is a cursor resolved against a Field: Value carries the field's Go type
type Position struct {
	Value any
	ID    string
}

func encodePosition(f Field, p Position) (string, error) {
	v, err := f.Kind.Format(p.Value)
	if err != nil {
		return "", fmt.Errorf("failed to format cursor value for %q: %w", f.Name, err)
	}
	return EncodeCursor(Cursor{Value: v, Field: f.Name, ID: p.ID})
}

// resolvePosition turns a raw token into a Position for f.
// Any token that cannot be used for f resolves to nil.
func resolvePosition(f Field, token string) (*Position, error) {
	c, err := DecodeCursor(token)
	if err != nil || c == nil {
		return nil, err
	}
	if c.Field != f.Name {
		return nil, fmt.Errorf("cursor was issued for field %q, not %q", c.Field, f.Name)
	}
	v, err := f.Kind.Parse(c.Value)
	if err != nil {
		return nil, fmt.Errorf("cursor value %q is not a valid %s: %w", c.Value, f.Kind, err)
	}
	return &Position{Value: v, ID: c.ID}, nil
}
