package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const (
	defaultMaxBlocks     = 4096
	defaultMaxBlockBytes = 1 << 20
)

func limitFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func checkBlocks(blocks []string, maxBlocks, maxBlockBytes int) (string, bool) {
	if len(blocks) > maxBlocks {
		return "precheck:too_many_blocks", false
	}
	for _, b := range blocks {
		if len(b) > maxBlockBytes {
			return "precheck:block_too_large", false
		}
	}
	return "", true
}

func writeReason(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "applied": false, "reason": reason})
}

// precheckBlocks bounds POST /blocks bodies before they reach the engine:
// block count and per-block size, both overridable via MERKLED_MAX_BLOCKS /
// MERKLED_MAX_BLOCK_BYTES. Oversize input answers 200 with a reason, not a
// transport error. Only JSON-shaped bodies are inspected here; the CBOR path
// re-checks after decode in the handler.
func precheckBlocks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/blocks" {
			next.ServeHTTP(w, r)
			return
		}

		// body backup/restore
		var body []byte
		if r.Body != nil {
			b, _ := io.ReadAll(r.Body)
			body = b
			r.Body = io.NopCloser(bytes.NewReader(b))
		}

		var req struct {
			Blocks []string `json:"blocks"`
		}
		if len(body) > 0 && json.Unmarshal(body, &req) == nil {
			maxBlocks := limitFromEnv("MERKLED_MAX_BLOCKS", defaultMaxBlocks)
			maxBlockBytes := limitFromEnv("MERKLED_MAX_BLOCK_BYTES", defaultMaxBlockBytes)
			if reason, ok := checkBlocks(req.Blocks, maxBlocks, maxBlockBytes); !ok {
				log.Printf("[precheck] reject reason=%s count=%d", reason, len(req.Blocks))
				incPrecheckReject()
				writeReason(w, reason)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
