//go:build !blake3

package merkle

import "testing"

func TestHashHex_SHA256Vector(t *testing.T) {
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := HashHex([]byte("abc")); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}
