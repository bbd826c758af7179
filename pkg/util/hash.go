package util

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Hash64 ...
func Hash64(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

// Hash128Hex returns the 128 bits murmur3 hash as 32 hex characters
func Hash128Hex(s string) string {
	h1, h2 := murmur3.Sum128([]byte(s))
	return fmt.Sprintf("%016x%016x", h1, h2)
}
