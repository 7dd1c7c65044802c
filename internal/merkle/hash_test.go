package merkle

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile("^[0-9a-f]{64}$")

func TestHashHex_Shape(t *testing.T) {
	for _, in := range [][]byte{nil, {}, []byte("a"), []byte("merkled"), make([]byte, 4096)} {
		d := HashHex(in)
		if !hexDigest.MatchString(d) {
			t.Fatalf("digest %q is not 64-char lowercase hex", d)
		}
	}
	if HashHex([]byte("a")) != HashHex([]byte("a")) {
		t.Fatal("not deterministic")
	}
	if HashHex([]byte("a")) == HashHex([]byte("b")) {
		t.Fatal("distinct inputs collided")
	}
}
