//go:build !blake3

package merkle

import (
	"crypto/sha256"
	"encoding/hex"
)

func HashHex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
