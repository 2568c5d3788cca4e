package huffcode

// Node is a node of a Huffman tree: either a *Leaf or an *Internal.  Nodes
// are immutable once the tree is built.
type Node[S Symbol] interface {
	// Frequency is the total number of occurrences of the symbols at or
	// below this node.
	Frequency() uint64

	isNode()
}

// Leaf is a Node holding one symbol.
type Leaf[S Symbol] struct {
	Symbol S
	Count  uint64
}

// Frequency returns the number of occurrences of the leaf's symbol.
func (leaf *Leaf[S]) Frequency() uint64 {
	return leaf.Count
}

func (*Leaf[S]) isNode() {}

// Internal is a Node with exactly two children.  Left is reached by a Zero
// bit and Right by a One bit.
type Internal[S Symbol] struct {
	Left  Node[S]
	Right Node[S]
	Count uint64

	// seq is the order in which the merge loop produced this node.
	seq int
}

// Frequency returns Left.Frequency() + Right.Frequency(), saturating.
func (in *Internal[S]) Frequency() uint64 {
	return in.Count
}

// Child returns the child selected by b.
func (in *Internal[S]) Child(b Bit) Node[S] {
	if b == Zero {
		return in.Left
	}
	return in.Right
}

func (*Internal[S]) isNode() {}

var (
	_ Node[int] = (*Leaf[int])(nil)
	_ Node[int] = (*Internal[int])(nil)
)

// lessNode is the total order used by the merge loop: ascending frequency,
// then leaves before internal nodes, then ascending symbol for two leaves or
// ascending creation order for two internal nodes.
func lessNode[S Symbol](a, b Node[S]) bool {
	if fa, fb := a.Frequency(), b.Frequency(); fa != fb {
		return fa < fb
	}
	la, aIsLeaf := a.(*Leaf[S])
	lb, bIsLeaf := b.(*Leaf[S])
	switch {
	case aIsLeaf && bIsLeaf:
		return la.Symbol < lb.Symbol
	case aIsLeaf:
		return true
	case bIsLeaf:
		return false
	default:
		return a.(*Internal[S]).seq < b.(*Internal[S]).seq
	}
}
