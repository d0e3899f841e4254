package pagination

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrUnknownField is returned when the requested ordering is not part of the source schema
var ErrUnknownField = errors.New("unknown ordering field")

// Query is what a Source is asked to return: at most Limit items strictly
// beyond After, ordered by (Field, id) ascending for Forward and descending for Backward.
// A nil After means start from the beginning in that direction.
type Query struct {
	Field     Field
	Direction Direction
	After     *Position
	Limit     int
}

// Source is an ordered collection the paginator can walk
type Source[T any] interface {
	Schema() *Schema
	Fetch(ctx context.Context, q Query) ([]T, error)
	// Position returns the ordering value and tie-break id of item under f
	Position(item T, f Field) Position
}

// Paginator builds cursor pages from a Source
type Paginator[T any] struct {
	cfg Config
}

func New[T any](cfg Config) *Paginator[T] {
	return &Paginator[T]{cfg: cfg.Normalize()}
}

func (p *Paginator[T]) Config() Config {
	return p.cfg
}

// GetPage fetches one page. Unusable cursors are ignored and the page starts
// from the beginning; an unknown ordering field is returned as ErrUnknownField.
func (p *Paginator[T]) GetPage(ctx context.Context, src Source[T], req CursorRequest) (*Page[T], error) {
	field, ok := src.Schema().Lookup(req.Ordering)
	if !ok {
		return nil, fmt.Errorf("%w: %q, expected one of %v", ErrUnknownField, req.Ordering, src.Schema().Names())
	}

	direction := req.Direction
	if direction == "" {
		direction = Forward
	}
	limit := p.cfg.ClampLimit(req.Limit)

	after, err := resolvePosition(field, req.Cursor)
	if err != nil {
		slog.Debug("Ignoring cursor", "field", field.Name, "error", err)
		after = nil
	}

	items, err := src.Fetch(ctx, Query{
		Field:     field,
		Direction: direction,
		After:     after,
		Limit:     limit + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}
	if items == nil {
		items = make([]T, 0)
	}

	meta := Meta{Count: len(items)}
	hasCursor := after != nil

	if direction == Forward {
		meta.HasNext = hasMore
		meta.HasPrevious = hasCursor
		if hasMore {
			if meta.NextCursor, err = p.cursorFor(src, field, items[len(items)-1]); err != nil {
				return nil, err
			}
		}
		if hasCursor {
			if meta.PreviousCursor, err = p.edgeCursor(src, field, items, 0, after); err != nil {
				return nil, err
			}
		}
	} else {
		meta.HasNext = hasCursor
		meta.HasPrevious = hasMore
		if hasCursor || hasMore {
			if meta.PreviousCursor, err = p.edgeCursor(src, field, items, len(items)-1, after); err != nil {
				return nil, err
			}
		}
	}

	return &Page[T]{Items: items, Meta: meta}, nil
}

func (p *Paginator[T]) cursorFor(src Source[T], f Field, item T) (*string, error) {
	return encodeToken(f, src.Position(item, f))
}

// edgeCursor encodes items[i], or the incoming position when the page is empty
func (p *Paginator[T]) edgeCursor(src Source[T], f Field, items []T, i int, fallback *Position) (*string, error) {
	if len(items) == 0 {
		return encodeToken(f, *fallback)
	}
	return p.cursorFor(src, f, items[i])
}

func encodeToken(f Field, pos Position) (*string, error) {
	token, err := encodePosition(f, pos)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
