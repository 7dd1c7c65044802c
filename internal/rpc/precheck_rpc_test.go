package rpc

import (
	"net/http"
	"testing"
)

func TestPrecheck_TooManyBlocks(t *testing.T) {
	t.Setenv("MERKLED_MAX_BLOCKS", "2")
	h, eng := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/blocks", `{"blocks":["a","b","c"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}
	got := decode(t, w)
	if got["ok"] != true || got["applied"] != false || got["reason"] != "precheck:too_many_blocks" {
		t.Fatalf("body: %s", w.Body.String())
	}
	if eng.BlockCount() != 0 {
		t.Fatalf("blocks leaked past precheck: %d", eng.BlockCount())
	}
}

func TestPrecheck_BlockTooLarge(t *testing.T) {
	t.Setenv("MERKLED_MAX_BLOCK_BYTES", "4")
	h, eng := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/blocks", `{"blocks":["abcdef"]}`)
	got := decode(t, w)
	if got["reason"] != "precheck:block_too_large" {
		t.Fatalf("body: %s", w.Body.String())
	}
	if eng.BlockCount() != 0 {
		t.Fatalf("blocks leaked past precheck: %d", eng.BlockCount())
	}
}

func TestPrecheck_PassesWithinLimits(t *testing.T) {
	t.Setenv("MERKLED_MAX_BLOCKS", "10")
	t.Setenv("MERKLED_MAX_BLOCK_BYTES", "10")
	h, eng := newTestRouter(t)

	w := do(t, h, http.MethodPost, "/blocks", `{"blocks":["a","b"]}`)
	if got := decode(t, w); got["accepted"] != float64(2) {
		t.Fatalf("body: %s", w.Body.String())
	}
	if eng.BlockCount() != 2 {
		t.Fatalf("queue=%d", eng.BlockCount())
	}
}
