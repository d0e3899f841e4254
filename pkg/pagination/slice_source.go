package pagination

import (
	"context"
	"slices"
	"strings"
)

// SliceSource is an in-memory Source over a snapshot of items.
// value returns the ordering value of an item for a field, id its unique key.
type SliceSource[T any] struct {
	schema *Schema
	items  []T
	value  func(item T, f Field) any
	id     func(item T) string
}

func NewSliceSource[T any](schema *Schema, items []T, value func(T, Field) any, id func(T) string) *SliceSource[T] {
	return &SliceSource[T]{
		schema: schema,
		items:  items,
		value:  value,
		id:     id,
	}
}

func (s *SliceSource[T]) Schema() *Schema {
	return s.schema
}

func (s *SliceSource[T]) Position(item T, f Field) Position {
	return Position{Value: s.value(item, f), ID: s.id(item)}
}

func (s *SliceSource[T]) Fetch(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := slices.Clone(s.items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		c := s.compare(q.Field, s.Position(a, q.Field), s.Position(b, q.Field))
		if q.Direction == Backward {
			return -c
		}
		return c
	})

	var out []T
	for _, it := range sorted {
		if len(out) == q.Limit {
			break
		}
		if q.After != nil && !s.beyond(q, s.Position(it, q.Field)) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *SliceSource[T]) compare(f Field, a, b Position) int {
	if c := f.Kind.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// beyond reports whether p lies strictly after q.After in the direction of travel.
// Without a tie-break id only the value is compared.
func (s *SliceSource[T]) beyond(q Query, p Position) bool {
	var c int
	if q.After.ID == "" {
		c = q.Field.Kind.Compare(p.Value, q.After.Value)
	} else {
		c = s.compare(q.Field, p, *q.After)
	}
	if q.Direction == Backward {
		return c < 0
	}
	return c > 0
}
