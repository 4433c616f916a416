package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string for request and attachment identifiers.
// ULIDs sort lexicographically by creation time, which keeps inbox reads
// cheap, and they are unguessable enough for the public status lookup.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
