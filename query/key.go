// Package query provides a keyed fetch cache with staleness tracking,
// prefix invalidation, and optimistic edits. Fetches for the same key are
// deduplicated so concurrent readers share one round trip.
package query

import (
	"fmt"
	"strings"
)

// Key identifies a cached query. Keys are composed from semantic tuples so
// related entries share a prefix and can be invalidated together.
type Key string

const keySep = "\x1f"

// K builds a key from tuple parts. Parts are formatted with %v, so plain
// strings, numbers, and Stringer values all compose naturally:
//
//	query.K("invoices", "list", params)
func K(parts ...any) Key {
	if len(parts) == 0 {
		return ""
	}
	segs := make([]string, len(parts))
	for i, p := range parts {
		segs[i] = fmt.Sprintf("%v", p)
	}
	return Key(strings.Join(segs, keySep))
}

// HasPrefix reports whether k begins with the tuple prefix. A key is its own
// prefix; a prefix only matches on tuple boundaries.
func (k Key) HasPrefix(prefix Key) bool {
	if k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+keySep)
}
