package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBlocks(size int) [][]byte {
	blocks := make([][]byte, size)
	for i := range blocks {
		blocks[i] = []byte(fmt.Sprintf("blk-%d-%d", size, i))
	}
	return blocks
}

// Tree shape depends on where odd counts appear, so the properties run over a
// span of sizes to hit the different paths.
func TestFastPathMatchesAssembledRoot(t *testing.T) {
	for size := 1; size <= 33; size++ {
		blocks := testBlocks(size)

		tr, err := BuildTree(blocks)
		if !assert.NoError(t, err) {
			return
		}
		root, err := tr.Root()
		if !assert.NoError(t, err) {
			return
		}
		fast, err := RootHash(blocks)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, root.Hash, fast, "size %d", size)
	}
}

func TestDeterminism(t *testing.T) {
	blocks := testBlocks(13)
	r1, err := RootHash(blocks)
	assert.NoError(t, err)
	r2, err := RootHash(blocks)
	assert.NoError(t, err)
	assert.Equal(t, r1, r2)

	t1, _ := BuildTree(blocks)
	t2, _ := BuildTree(blocks)
	assert.Equal(t, len(t1.Nodes), len(t2.Nodes))
	for i := range t1.Nodes {
		assert.Equal(t, t1.Nodes[i].Hash, t2.Nodes[i].Hash)
	}
}

func TestOddLengthDuplicationInvariance(t *testing.T) {
	for _, size := range []int{1, 3, 5, 7, 11, 21} {
		blocks := testBlocks(size)
		withDup := append(append([][]byte(nil), blocks...), blocks[len(blocks)-1])

		a, err := RootHash(blocks)
		assert.NoError(t, err)
		b, err := RootHash(withDup)
		assert.NoError(t, err)
		assert.Equal(t, a, b, "size %d", size)
	}
}

func TestOrderSensitivity(t *testing.T) {
	ab, err := RootHash([][]byte{[]byte("a"), []byte("b")})
	assert.NoError(t, err)
	ba, err := RootHash([][]byte{[]byte("b"), []byte("a")})
	assert.NoError(t, err)
	assert.NotEqual(t, ab, ba, "concatenation order must matter")
}

func TestLevelCounts(t *testing.T) {
	for size := 1; size <= 33; size++ {
		tr, err := BuildTree(testBlocks(size))
		if !assert.NoError(t, err) {
			return
		}

		// expected counts per level: leaves rounded up to even, then
		// ceil(prev/2) per step until one remains
		nPrime := size
		if nPrime%2 == 1 {
			nPrime++
		}
		want := map[int]int{0: nPrime}
		levels := 0
		for c := nPrime; c > 1; {
			c = (c + 1) / 2
			levels++
			want[levels] = c
		}

		got := map[int]int{0: len(tr.Leaves)}
		maxLevel := 0
		for _, n := range tr.Nodes {
			got[n.Level]++
			if n.Level > maxLevel {
				maxLevel = n.Level
			}
		}
		assert.Equal(t, levels, maxLevel, "size %d", size)
		assert.Equal(t, want, got, "size %d", size)
	}
}

func TestDigestShape(t *testing.T) {
	tr, err := BuildTree(testBlocks(9))
	assert.NoError(t, err)
	for _, l := range tr.Leaves {
		assert.Regexp(t, "^[0-9a-f]{64}$", l.Hash)
	}
	for _, n := range tr.Nodes {
		assert.Regexp(t, "^[0-9a-f]{64}$", n.Hash)
	}
}
