// Package merkle builds a hash tree over an ordered sequence of opaque
// blocks and exposes the root digest and the full node set for integrity
// checks. Digests are 64-char lowercase hex strings; equality anywhere in
// this package is string equality on that form.
package merkle

// Tree is the assembled result. Nodes holds every internal node with higher
// levels first, so Nodes[0] is the root once assembly has finished; within a
// level nodes are kept left to right. RootHash stays empty until SetRootHash
// is called. Construction is append-only; a rebuild means a new Tree.
type Tree struct {
	RootHash string
	Nodes    []*Node
	Leaves   []*Leaf
}

// Leaf is a level-0 entry: the digest of one input block plus the block itself.
type Leaf struct {
	Hash  string
	Value []byte
	Level int
}

// Node is an internal vertex. Hash covers the two child hashes in
// left-then-right order. DupRight is set when an odd frontier forced the
// last element to serve as its own sibling; Left and Right then point at the
// same child even though no extra input ever existed.
type Node struct {
	Hash     string
	Left     Child
	Right    Child
	Level    int
	DupRight bool
}

// Child is either a *Leaf or a *Node from the level below its parent.
type Child interface {
	childHash() string
	childLevel() int
}

func (l *Leaf) childHash() string { return l.Hash }
func (l *Leaf) childLevel() int   { return l.Level }
func (n *Node) childHash() string { return n.Hash }
func (n *Node) childLevel() int   { return n.Level }

// New returns an empty tree ready for AddLeaves.
func New() *Tree { return &Tree{} }

// DefaultBlocks is the illustrative 7-value sample sequence served when a
// caller supplies no blocks of its own (demo endpoint, tests).
var DefaultBlocks = [][]byte{
	[]byte("a28eb40fba759bd1fefeaf5ed7740127b7e3ff4e566869c1ee4c3e4650705b45"),
	[]byte("57e2023abcba0ec3ee26e83845a159ccfeeac5f2782caddddfdc82b0398c2281"),
	[]byte("6495706ba5caab21eaef29c1a70d565cad1d421a9e08802e58970dcc608e94ac"),
	[]byte("98d6ad4c3e203d3532b2ae83399e30f1d1515adcd86058d99bad7ab1339eb23c"),
	[]byte("cd9cbc46d02b3baedab491ae0c632f488c14cb135a746bcc2f3c3a80c9e28818"),
	[]byte("28a0fba72cb363251f2dab2af38d0eecccab645323e84a4382df87090cea5ffa"),
	[]byte("5e730bfba749706a4afa3eb24d58f980f968cfe094f883f69c02f309df641971"),
}
