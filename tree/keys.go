package tree

import "github.com/google/uuid"

// KeyGenerator mints cache keys for keyless Memoize calls.
// Implemented by UUIDKeys (production) and testutil.FixedKeys (tests).
type KeyGenerator interface {
	Generate() string
}

// UUIDKeys generates time-sortable UUIDv7 tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so keyless cache
// entries sort by creation time, which is convenient when inspecting a cache that
// grew from repeated keyless calls.
//
// Stateless and safe for concurrent use.
type UUIDKeys struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDKeys) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
