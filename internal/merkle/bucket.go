package merkle

import (
	"runtime"
	"sync"
)

// Levels at least this wide fan hashing out across CPUs. Every pair at a
// level is independent, so indexed writes keep the output order identical to
// the sequential loop.
const parallelPairs = 512

func combine(a, b string) string { return HashHex([]byte(a + b)) }

// bucketPairs combines adjacent digests into one aggregate per pair:
// H(hs[i] + hs[i+1]) over the hex strings, no separator, no prefix. An odd
// count reuses the last digest as both halves of the final pair.
func bucketPairs(hs []string) []string {
	if len(hs)%2 == 1 {
		hs = append(hs, hs[len(hs)-1]) // odd → duplicate last
	}
	out := make([]string, len(hs)/2)
	if len(out) >= parallelPairs {
		bucketChunks(hs, out)
		return out
	}
	for i := 0; i < len(hs); i += 2 {
		out[i/2] = combine(hs[i], hs[i+1])
	}
	return out
}

func bucketChunks(hs []string, out []string) {
	workers := runtime.NumCPU()
	if workers > len(out) {
		workers = len(out)
	}
	chunk := (len(out) + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(out) {
			hi = len(out)
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = combine(hs[2*i], hs[2*i+1])
			}
		}(lo, hi)
	}
	wg.Wait()
}
