package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
)

// ArgsKey derives a key from positional arguments. Keyword-style arguments
// are passed as a map, which encoding/json writes with sorted keys.
func ArgsKey(prefix string, args ...any) (string, error) {
	b, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key arguments: %w", err)
	}
	sum := sha256.Sum256(b)
	return prefix + ":args:" + hex.EncodeToString(sum[:]), nil
}

// RequestKey derives a key from a request path and its query parameters.
// Parameter order does not matter.
func RequestKey(prefix, path string, query url.Values) string {
	key := prefix + ":req:" + path
	if encoded := query.Encode(); encoded != "" {
		key += "?" + encoded
	}
	return key
}
