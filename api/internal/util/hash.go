package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is the cache key for solve results and rendered videos.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
