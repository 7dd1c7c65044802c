package codec

import "testing"

func TestDecodeJSON_StripsBOM(t *testing.T) {
	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"blocks":["a","b"]}`)...)
	var req BlocksRequest
	if err := DecodeJSON(body, &req); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(req.Blocks) != 2 || req.Blocks[0] != "a" {
		t.Fatalf("blocks: %v", req.Blocks)
	}
}

func TestDecodeJSON_Plain(t *testing.T) {
	var req BlocksRequest
	if err := DecodeJSON([]byte(`{"blocks":[]}`), &req); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(req.Blocks) != 0 {
		t.Fatalf("blocks: %v", req.Blocks)
	}
	if err := DecodeJSON([]byte(`{`), &req); err == nil {
		t.Fatal("truncated body must fail")
	}
}
