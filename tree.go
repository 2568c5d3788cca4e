package huffcode

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Tree is a Huffman code tree together with the classical and canonical
// codes derived from it.  A Tree is immutable, and is safe for concurrent use
// by multiple goroutines.
type Tree[S Symbol] struct {
	root      Node[S]
	freqs     []Frequency[S]
	classical map[S]Code
	canonical map[S]Code
	lengths   LengthTable[S]
	minSize   byte
	maxSize   byte
}

// BuildFromSymbols counts the symbols in input and builds a Tree from the
// result.  An empty input yields an empty Tree.
func BuildFromSymbols[S Symbol](input []S) (*Tree[S], error) {
	return Build(Count(input))
}

// Build builds a Tree from a frequency table.  Each symbol may appear at most
// once and every count must be at least 1; the order of freqs does not
// matter.  An empty table yields an empty Tree.
//
// Ties between equal frequencies put leaves before internal nodes, leaves in
// ascending symbol order, and internal nodes in the order they were created,
// so the same frequencies always produce the same tree and the same codes.
func Build[S Symbol](freqs []Frequency[S]) (*Tree[S], error) {
	sorted := make([]Frequency[S], len(freqs))
	copy(sorted, freqs)
	sortFrequencies(sorted)

	for index, item := range sorted {
		if item.Count == 0 {
			return nil, fmt.Errorf("%w: symbol %v has count 0", ErrInvalidFrequencies, item.Symbol)
		}
		if index > 0 && sorted[index-1].Symbol == item.Symbol {
			return nil, fmt.Errorf("%w: symbol %v listed twice", ErrInvalidFrequencies, item.Symbol)
		}
	}

	t := &Tree[S]{
		freqs:     sorted,
		classical: make(map[S]Code, len(sorted)),
		lengths:   make(LengthTable[S], len(sorted)),
	}

	if len(sorted) == 0 {
		t.canonical = make(map[S]Code)
		log.Debugf("built empty Huffman tree")
		return t, nil
	}

	t.root = buildRoot(sorted)

	if err := t.assignClassical(); err != nil {
		return nil, err
	}

	canonical, err := CanonicalCodes(t.lengths)
	assert.Assertf(err == nil, "lengths derived from a Huffman tree must form a canonical code: %v", err)
	t.canonical = canonical

	log.Debugf("built Huffman tree: %d symbols, code sizes %d .. %d", len(sorted), t.minSize, t.maxSize)
	return t, nil
}

// buildRoot runs the greedy merge loop over a non-empty, symbol-sorted
// frequency table and returns the root.
func buildRoot[S Symbol](sorted []Frequency[S]) Node[S] {
	// Step 1: build a minheap of leaves.

	h := nodeHeap[S]{list: make([]Node[S], 0, len(sorted))}
	for _, item := range sorted {
		h.list = append(h.list, &Leaf[S]{Symbol: item.Symbol, Count: item.Count})
	}
	h.Init()

	// Step 2: pop the two smallest nodes, merge them, push the merged node
	// back, until only the root remains.

	seq := 0
	for h.Len() > 1 {
		a := heap.Pop(&h).(Node[S])
		b := heap.Pop(&h).(Node[S])
		in := &Internal[S]{
			Left:  a,
			Right: b,
			Count: saturatingAdd(a.Frequency(), b.Frequency()),
			seq:   seq,
		}
		seq++
		heap.Push(&h, in)
	}

	assert.Assertf(h.Len() == 1, "merge loop must leave exactly one node, got %d", h.Len())
	return heap.Pop(&h).(Node[S])
}

// assignClassical walks the tree and records each leaf's path as its
// classical code.  A lone leaf at the root gets the 1-bit code "0".
func (t *Tree[S]) assignClassical() error {
	if leaf, ok := t.root.(*Leaf[S]); ok {
		t.record(leaf.Symbol, MakeCode(1, 0))
		return nil
	}

	var walk func(node Node[S], path Code) error
	walk = func(node Node[S], path Code) error {
		switch x := node.(type) {
		case *Leaf[S]:
			t.record(x.Symbol, path)
			return nil

		case *Internal[S]:
			assert.Assertf(
				x.Count == saturatingAdd(x.Left.Frequency(), x.Right.Frequency()),
				"internal node frequency %d is not the sum of its children", x.Count)
			if path.Size >= MaxCodeSize {
				return fmt.Errorf("%w: tree is deeper than %d levels", ErrCodeTooLong, MaxCodeSize)
			}
			if err := walk(x.Left, path.Append(Zero)); err != nil {
				return err
			}
			return walk(x.Right, path.Append(One))

		default:
			panic(fmt.Errorf("huffcode: unexpected node type %T", node))
		}
	}
	return walk(t.root, Code{})
}

func (t *Tree[S]) record(symbol S, hc Code) {
	t.classical[symbol] = hc
	t.lengths[symbol] = hc.Size
	if len(t.classical) == 1 {
		t.minSize, t.maxSize = hc.Size, hc.Size
	} else if t.minSize > hc.Size {
		t.minSize = hc.Size
	} else if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
}

// Root returns the root of the tree, or nil if the tree is empty.
func (t *Tree[S]) Root() Node[S] {
	return t.root
}

// Empty reports whether the tree was built from an empty alphabet.
func (t *Tree[S]) Empty() bool {
	return t.root == nil
}

// Frequencies returns the frequency table the tree was built from, ordered by
// ascending symbol.
func (t *Tree[S]) Frequencies() []Frequency[S] {
	out := make([]Frequency[S], len(t.freqs))
	copy(out, t.freqs)
	return out
}

// ClassicalCodes returns a copy of the code given by the tree's shape: Zero
// for each step to a left child and One for each step to a right child.
func (t *Tree[S]) ClassicalCodes() map[S]Code {
	return copyCodes(t.classical)
}

// CanonicalCodes returns a copy of the canonical code with the same length
// for each symbol as ClassicalCodes.
func (t *Tree[S]) CanonicalCodes() map[S]Code {
	return copyCodes(t.canonical)
}

// Lengths returns a copy of the code length of each symbol.
func (t *Tree[S]) Lengths() LengthTable[S] {
	out := make(LengthTable[S], len(t.lengths))
	for symbol, size := range t.lengths {
		out[symbol] = size
	}
	return out
}

// MinSize is the bit length of the shortest code.
func (t *Tree[S]) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Tree[S]) MaxSize() byte {
	return t.maxSize
}

// WeightedLength returns the sum over all symbols of frequency × code
// length, which is the number of bits needed to encode the input the tree
// was built from.
func (t *Tree[S]) WeightedLength() uint64 {
	var sum uint64
	for _, item := range t.freqs {
		sum = saturatingAdd(sum, item.Count*uint64(t.lengths[item.Symbol]))
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tSymbols() = %d\n", len(t.freqs))
	fmt.Fprintf(&buf, "\tWeightedLength() = %d\n", t.WeightedLength())
	for _, item := range t.freqs {
		fmt.Fprintf(&buf, "\tSymbol(%v) = {%d, %s, %s}\n",
			item.Symbol, item.Count, t.classical[item.Symbol], t.canonical[item.Symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func copyCodes[S Symbol](codes map[S]Code) map[S]Code {
	out := make(map[S]Code, len(codes))
	for symbol, hc := range codes {
		out[symbol] = hc
	}
	return out
}

// type nodeHeap {{{

type nodeHeap[S Symbol] struct {
	list []Node[S]
}

func (h *nodeHeap[S]) Init() {
	heap.Init(h)
}

func (h *nodeHeap[S]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[S]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[S]) Less(i, j int) bool {
	return lessNode[S](h.list[i], h.list[j])
}

func (h *nodeHeap[S]) Push(x interface{}) {
	h.list = append(h.list, x.(Node[S]))
}

func (h *nodeHeap[S]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[int])(nil)

// }}}
