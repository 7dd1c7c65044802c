package rpc

import (
	"encoding/json"
	"errors"
	"expvar"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"merkled/internal/app"
	"merkled/internal/buildinfo"
	"merkled/internal/codec"
	"merkled/internal/merkle"
)

var bootTime = time.Now()

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func childHash(c merkle.Child) string {
	switch v := c.(type) {
	case *merkle.Leaf:
		return v.Hash
	case *merkle.Node:
		return v.Hash
	}
	return ""
}

func nodeView(n *merkle.Node) map[string]any {
	return map[string]any{
		"hash":      n.Hash,
		"level":     n.Level,
		"left":      childHash(n.Left),
		"right":     childHash(n.Right),
		"dup_right": n.DupRight,
	}
}

func treeView(t *merkle.Tree) map[string]any {
	root, _ := t.Root()
	return map[string]any{
		"ok":         true,
		"root":       t.RootHash,
		"levels":     root.Level + 1,
		"node_count": len(t.Nodes),
		"leaf_count": len(t.Leaves),
	}
}

func NewRouter(eng *app.Engine) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/debug/vars", expvar.Handler())

	// --- Health / version ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "ok",
			"time_utc":   time.Now().UTC().Format(time.RFC3339),
			"uptime_sec": int64(time.Since(bootTime).Seconds()),
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"name": buildinfo.Name, "version": buildinfo.Version,
			"commit": buildinfo.Commit, "date": buildinfo.Date,
			"go": buildinfo.Go, "os": buildinfo.OS, "arch": buildinfo.Arch,
		})
	})

	// --- Block submission ---
	mux.HandleFunc("/blocks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)

		var req codec.BlocksRequest
		var err error
		if strings.Contains(r.Header.Get("Content-Type"), "cbor") {
			err = codec.DecodeCBOR(body, &req)
		} else {
			err = codec.DecodeJSON(body, &req)
		}
		if err != nil {
			log.Printf("[blocks] decode error: %v", err)
			incBadPayload()
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad_payload"})
			return
		}
		// CBOR bodies bypass the middleware's JSON sniff; check again here
		maxBlocks := limitFromEnv("MERKLED_MAX_BLOCKS", defaultMaxBlocks)
		maxBlockBytes := limitFromEnv("MERKLED_MAX_BLOCK_BYTES", defaultMaxBlockBytes)
		if reason, ok := checkBlocks(req.Blocks, maxBlocks, maxBlockBytes); !ok {
			incPrecheckReject()
			writeReason(w, reason)
			return
		}
		for _, b := range req.Blocks {
			eng.PushBlock([]byte(b))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok": true, "accepted": len(req.Blocks), "total": eng.BlockCount(),
		})
	})

	// --- Fast-path root over the current queue (sample when empty) ---
	mux.HandleFunc("/root", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		root, count, err := eng.RootHash()
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "applied": false, "reason": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "root": root, "block_count": count})
	})

	// --- Full tree build ---
	mux.HandleFunc("/tree", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req codec.BlocksRequest
		if len(body) > 0 {
			if err := codec.DecodeJSON(body, &req); err != nil {
				incBadPayload()
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad_payload"})
				return
			}
		}

		var t *merkle.Tree
		var err error
		if len(req.Blocks) == 0 {
			t, err = eng.BuildTree()
		} else {
			blocks := make([][]byte, len(req.Blocks))
			for i, s := range req.Blocks {
				blocks[i] = []byte(s)
			}
			t, err = eng.BuildTreeFrom(blocks)
		}
		if err != nil {
			if errors.Is(err, merkle.ErrEmptyInput) || errors.Is(err, merkle.ErrNoRoot) {
				writeJSON(w, http.StatusOK, map[string]any{"ok": true, "applied": false, "reason": err.Error()})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, treeView(t))
	})

	// --- Queries over the last built tree ---
	mux.HandleFunc("/tree/root", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		t := eng.LastTree()
		if t == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false, "reason": "no_tree"})
			return
		}
		root, err := t.Root()
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false, "reason": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": true, "node": nodeView(root)})
	})

	mux.HandleFunc("/tree/node", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		t := eng.LastTree()
		if t == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false, "reason": "no_tree"})
			return
		}
		h := strings.TrimSpace(r.URL.Query().Get("hash"))
		n, found := t.GetNode(h)
		if !found {
			// a miss is an answer, not an error
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": true, "node": nodeView(n)})
	})

	// --- Batch commit/query ---
	mux.HandleFunc("/commit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		hdr, ok := eng.CommitBatch()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "applied": false, "reason": "nothing_to_commit"})
			return
		}
		log.Printf("[commit] batch=%d blocks=%d root=%s", hdr.Batch, hdr.BlockCount, hdr.Root)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "applied": true, "batch": hdr})
	})

	mux.HandleFunc("/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		n, err := strconv.ParseUint(r.URL.Query().Get("n"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bad_batch_number"})
			return
		}
		hdr, ok := eng.GetBatch(n)
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": true, "batch": hdr})
	})

	mux.HandleFunc("/batch/latest", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		hdr, ok := eng.LatestBatch()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": false})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "found": true, "batch": hdr})
	})

	// --- SSE ---
	mux.HandleFunc("/events/stream", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fl, ok := w.(http.Flusher)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := eng.SubscribeForSSE()
		defer eng.UnsubscribeForSSE(ch)

		notify := r.Context().Done()
		for {
			select {
			case <-notify:
				return
			case msg := <-ch:
				w.Write([]byte("event: batch\n"))
				w.Write([]byte("data: "))
				w.Write(msg)
				w.Write([]byte("\n\n"))
				fl.Flush()
			}
		}
	})

	return precheckBlocks(mux)
}
