package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// UUIDGenerator issues entity and queue ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to a random v4.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// RandomHex returns n random bytes hex-encoded. It falls back to the hex of
// a v4 uuid when the system source fails.
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		u := uuid.New()
		return hex.EncodeToString(u[:min(n, len(u))])
	}
	return hex.EncodeToString(b)
}
