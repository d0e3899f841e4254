package pagination

// Meta describes where a page sits in the ordered set.
// NextCursor is only issued on forward pages. A backward page requested with a
// cursor reports HasNext with a nil NextCursor; clients get back to newer items
// by replaying the forward request that issued that cursor.
type Meta struct {
	HasNext        bool    `json:"has_next"`
	HasPrevious    bool    `json:"has_previous"`
	NextCursor     *string `json:"next_cursor"`
	PreviousCursor *string `json:"previous_cursor"`
	Count          int     `json:"count"`
}

// Page represents a cursor-based paginated result
// Generic type T allows reuse across different entity types
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// MapPage projects the items of a page, keeping its meta
func MapPage[A, B any](p *Page[A], fn func(A) B) *Page[B] {
	items := make([]B, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return &Page[B]{Items: items, Meta: p.Meta}
}
