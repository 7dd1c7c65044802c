// blockgen writes a CBOR blocks file for manual submission:
//
//	blockgen -n 16 -out blocks.cbor
//	curl -H 'Content-Type: application/cbor' --data-binary @blocks.cbor :8420/blocks
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
)

func main() {
	var n int
	var out string
	pflag.IntVar(&n, "n", 7, "number of blocks")
	pflag.StringVar(&out, "out", "blocks.cbor", "output file")
	pflag.Parse()

	blocks := make([]string, n)
	for i := range blocks {
		sum := sha256.Sum256([]byte(fmt.Sprintf("sample-block-%d", i+1)))
		blocks[i] = hex.EncodeToString(sum[:])
	}
	b, err := cbor.Marshal(map[string]any{"blocks": blocks})
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("[OK] wrote %d blocks to %s", n, out)
}
