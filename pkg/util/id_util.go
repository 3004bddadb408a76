package util

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewUUID returns a new base58 encoded UUID
func NewUUID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}

// NewID returns a base58 encoded UUID carrying a short type prefix, e.g. "whk_3J98t1WpEZ73CNmQviecrn".
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, NewUUID())
}
