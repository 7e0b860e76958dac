package domain

import "github.com/oklog/ulid/v2"

// NewID returns a fresh ULID string.  ULIDs sort by creation time, so
// "ORDER BY id" doubles as insertion order.
func NewID() string {
	return ulid.Make().String()
}
