package merkle

import "errors"

// ErrEmptyInput rejects a zero-length block sequence. The tree over no blocks
// is deliberately undefined here; callers wanting the demo behavior pass
// DefaultBlocks themselves.
var ErrEmptyInput = errors.New("empty_input")

// BuildTree assembles the full tree for blocks: leaves first, then one level
// of nodes at a time until a single root remains.
func BuildTree(blocks [][]byte) (*Tree, error) {
	if len(blocks) == 0 {
		return nil, ErrEmptyInput
	}
	t := New()
	t.AddLeaves(blocks)
	t.AddNodes()
	return t, nil
}

// AddLeaves hashes each block, in order, into a level-0 leaf. An odd block
// count enters the last block twice so the leaf level is always even; unlike
// the odd-frontier case above level 0, that duplicate IS persisted as its own
// leaf. Never inspects existing leaves.
func (t *Tree) AddLeaves(blocks [][]byte) *Tree {
	for _, b := range blocks {
		t.appendLeaf(b)
	}
	if len(blocks)%2 == 1 {
		t.appendLeaf(blocks[len(blocks)-1])
	}
	return t
}

func (t *Tree) appendLeaf(b []byte) {
	v := make([]byte, len(b))
	copy(v, b)
	t.Leaves = append(t.Leaves, &Leaf{Hash: HashHex(b), Value: v, Level: 0})
}

// AddNodes builds the internal levels bottom-up. The frontier is the level
// just produced; assembly stops the moment it holds a single node. Each new
// level is prepended to Nodes so the root lands at Nodes[0].
func (t *Tree) AddNodes() *Tree {
	if len(t.Leaves) == 0 {
		return t
	}
	frontier := make([]Child, len(t.Leaves))
	for i, l := range t.Leaves {
		frontier[i] = l
	}
	for len(frontier) > 1 {
		dup := false
		if len(frontier)%2 == 1 {
			frontier = append(frontier, frontier[len(frontier)-1])
			dup = true
		}
		level := make([]*Node, 0, len(frontier)/2)
		next := make([]Child, 0, len(frontier)/2)
		for i := 0; i < len(frontier); i += 2 {
			l, r := frontier[i], frontier[i+1]
			n := &Node{
				Hash:     combine(l.childHash(), r.childHash()),
				Left:     l,
				Right:    r,
				Level:    l.childLevel() + 1,
				DupRight: dup && i == len(frontier)-2,
			}
			level = append(level, n)
			next = append(next, n)
		}
		t.Nodes = append(level, t.Nodes...)
		frontier = next
	}
	return t
}

// RootHash computes the root digest for blocks without materializing any
// leaf or node values: hash every block, then bucket the digest sequence one
// level at a time. Always buckets at least once, so a single block x yields
// H(H(x)+H(x)), byte-identical to the assembled tree's root.
func RootHash(blocks [][]byte) (string, error) {
	if len(blocks) == 0 {
		return "", ErrEmptyInput
	}
	hs := make([]string, len(blocks))
	for i, b := range blocks {
		hs[i] = HashHex(b)
	}
	for {
		hs = bucketPairs(hs)
		if len(hs) == 1 {
			return hs[0], nil
		}
	}
}
