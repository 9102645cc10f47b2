package solana

import (
	"github.com/minio/sha256-simd"
)

// Sha256 hashes the concatenation of parts.
func Sha256(parts ...[]byte) (out [32]byte) {
	hasher := sha256.New()
	for _, p := range parts {
		hasher.Write(p)
	}
	hasher.Sum(out[:0])
	return
}
