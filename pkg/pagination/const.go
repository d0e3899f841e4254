package pagination

// DefaultLimit is the page size used when a request does not specify one
const DefaultLimit = 20

// MaxLimit is the largest page size served; larger requests are clamped
const MaxLimit = 100
