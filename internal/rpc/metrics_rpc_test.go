package rpc

import (
	"expvar"
	"net/http"
	"testing"
)

func expInt(t *testing.T, name string) int64 {
	t.Helper()
	if v := expvar.Get(name); v != nil {
		if iv, ok := v.(*expvar.Int); ok {
			return iv.Value()
		}
	}
	return -1
}

func TestMetrics_PrecheckReject_Increments(t *testing.T) {
	t.Setenv("MERKLED_MAX_BLOCKS", "1")
	h, _ := newTestRouter(t)
	before := expInt(t, "rpc_precheck_reject_total")

	do(t, h, http.MethodPost, "/blocks", `{"blocks":["a","b"]}`)

	after := expInt(t, "rpc_precheck_reject_total")
	if after != before+1 {
		t.Fatalf("reject metric not incremented: before=%d after=%d", before, after)
	}
}

func TestMetrics_BadPayload_Increments(t *testing.T) {
	h, _ := newTestRouter(t)
	before := expInt(t, "rpc_bad_payload_total")

	w := do(t, h, http.MethodPost, "/blocks", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d", w.Code)
	}

	after := expInt(t, "rpc_bad_payload_total")
	if after != before+1 {
		t.Fatalf("bad-payload metric not incremented: before=%d after=%d", before, after)
	}
}
