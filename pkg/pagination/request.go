package pagination

// CursorRequest represents a cursor-based pagination request
type CursorRequest struct {
	Cursor    string    `json:"cursor,omitempty" query:"cursor"`
	Limit     int       `json:"limit" query:"limit"`
	Ordering  string    `json:"ordering,omitempty" query:"ordering"`
	Direction Direction `json:"direction,omitempty" query:"direction"`
}

// Config bounds page sizes. It is passed explicitly to every Paginator.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the package defaults
func DefaultConfig() Config {
	return Config{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit}
}

// Normalize repairs out-of-range settings instead of failing
func (c Config) Normalize() Config {
	if c.MaxLimit < 1 {
		c.MaxLimit = MaxLimit
	}
	if c.DefaultLimit < 1 {
		c.DefaultLimit = min(DefaultLimit, c.MaxLimit)
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	return c
}

// ClampLimit maps a requested limit into [1, MaxLimit].
// A limit of zero or below is treated as unset and gets DefaultLimit.
func (c Config) ClampLimit(limit int) int {
	if limit <= 0 {
		return c.DefaultLimit
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}
