package merkle

import "errors"

// ErrNoRoot means the tree has no internal nodes (zero or one leaf, never
// promoted). Callers must assemble before asking for a root.
var ErrNoRoot = errors.New("no_root")

// Root returns the root node: the first element of Nodes.
func (t *Tree) Root() (*Node, error) {
	if len(t.Nodes) == 0 {
		return nil, ErrNoRoot
	}
	return t.Nodes[0], nil
}

// GetNode finds the first internal node whose hash equals h. A miss is not an
// error; the second return reports presence.
func (t *Tree) GetNode(h string) (*Node, bool) {
	for _, n := range t.Nodes {
		if n.Hash == h {
			return n, true
		}
	}
	return nil, false
}

// SetRootHash copies the root node's digest into Tree.RootHash. Assembly
// never fills the field on its own.
func (t *Tree) SetRootHash() error {
	n, err := t.Root()
	if err != nil {
		return err
	}
	t.RootHash = n.Hash
	return nil
}
