//go:build blake3

package merkle

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

func HashHex(b []byte) string {
	h := blake3.New()
	h.Write(b)
	out := make([]byte, 32)
	h.Sum(out[:0])
	return hex.EncodeToString(out)
}
