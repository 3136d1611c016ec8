package id

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (a random v4 UUID without hyphens).
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s looks like an id produced by NewID32.
func Valid(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
