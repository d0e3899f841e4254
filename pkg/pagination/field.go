package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind describes how an ordering value is written into a cursor and compared
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindTime
	KindUUID
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindUUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// Format renders v as the string stored in a cursor token
func (k Kind) Format(v any) (string, error) {
	switch k {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInt:
		switch n := v.(type) {
		case int:
			return strconv.FormatInt(int64(n), 10), nil
		case int32:
			return strconv.FormatInt(int64(n), 10), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		}
	case KindFloat:
		switch f := v.(type) {
		case float32:
			return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
		case float64:
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case KindTime:
		if t, ok := v.(time.Time); ok {
			return t.UTC().Format(time.RFC3339Nano), nil
		}
	case KindUUID:
		if id, ok := v.(uuid.UUID); ok {
			return id.String(), nil
		}
	}
	return "", fmt.Errorf("cannot format %T as %s", v, k)
}

// Parse converts a cursor string back into the typed value for k.
// Ints parse to int64, floats to float64, times to time.Time (UTC) and uuids to uuid.UUID.
func (k Kind) Parse(s string) (any, error) {
	switch k {
	case KindString:
		return s, nil
	case KindInt:
		return strconv.ParseInt(s, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(s, 64)
	case KindTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	case KindUUID:
		return uuid.Parse(s)
	default:
		return nil, fmt.Errorf("unsupported kind %d", k)
	}
}

// Compare orders two values of kind k. Values are normalized first, so an int
// item value compares against an int64 parsed from a cursor.
func (k Kind) Compare(a, b any) int {
	switch k {
	case KindInt:
		return cmp.Compare(toInt64(a), toInt64(b))
	case KindFloat:
		return cmp.Compare(toFloat64(a), toFloat64(b))
	case KindTime:
		return a.(time.Time).Compare(b.(time.Time))
	case KindUUID:
		return strings.Compare(a.(uuid.UUID).String(), b.(uuid.UUID).String())
	default:
		return strings.Compare(a.(string), b.(string))
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	panic(fmt.Sprintf("pagination: %T is not an int kind value", v))
}

func toFloat64(v any) float64 {
	switch f := v.(type) {
	case float32:
		return float64(f)
	case float64:
		return f
	}
	panic(fmt.Sprintf("pagination: %T is not a float kind value", v))
}

// Field is a sortable attribute of a source.
// Name is what clients send, Column is what the storage layer sorts on.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Schema is the set of fields a source can be ordered by
type Schema struct {
	fields      map[string]Field
	defaultName string
}

// NewSchema builds a schema; the first field is the default ordering.
// Fields without a Column use their Name as the column.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: make(map[string]Field, len(fields))}
	for i, f := range fields {
		if f.Column == "" {
			f.Column = f.Name
		}
		if i == 0 {
			s.defaultName = f.Name
		}
		s.fields[f.Name] = f
	}
	return s
}

// Lookup returns the field for name; an empty name resolves to the default field
func (s *Schema) Lookup(name string) (Field, bool) {
	if name == "" {
		name = s.defaultName
	}
	f, ok := s.fields[name]
	return f, ok
}

// Names lists the sortable field names
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.fields))
	for n := range s.fields {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
