package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader carries the hex HMAC-SHA256 digest of a request body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests of request bodies. Hash
// instances are pooled to keep allocations off the request path.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher for hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the raw digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	hasher.Reset()

	hasher.Write(data)
	sum := hasher.Sum(nil)

	hasher.Reset()
	h.pool.Put(hasher)

	return sum
}

// HexSum returns the hex-encoded digest of data, the form sent in the
// HashSHA256 header.
func (h *Hasher) HexSum(data []byte) string {
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether signature is the hex digest of data.
func (h *Hasher) Verify(data []byte, signature string) bool {
	decoded, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(decoded, h.Sum(data))
}
