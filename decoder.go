package huffcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Decode implements Coder.
//
// The cursor starts at the root, follows one child per bit, and emits a
// symbol and returns to the root on reaching a leaf.  For a tree holding a
// single symbol, each Zero bit is one occurrence and a One bit is malformed.
func (c *ClassicalCoder[S]) Decode(src BitSource) ([]S, error) {
	root := c.tree.root
	cursor := root

	var out []S
	var pos uint64
	var depth int
	for ; ; pos++ {
		bit, err := src.ReadBit()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("%w: %w", ErrSourceFailure, err)
		}
		if root == nil {
			return out, ErrEmptyAlphabet
		}

		switch x := cursor.(type) {
		case *Internal[S]:
			cursor = x.Child(bit)
		case *Leaf[S]:
			if bit != Zero {
				return out, fmt.Errorf("%w: bit %d at position %d matches no code", ErrMalformedBitstream, bit, pos)
			}
		}
		depth++

		if leaf, ok := cursor.(*Leaf[S]); ok {
			out = append(out, leaf.Symbol)
			cursor = root
			depth = 0
		}
	}

	if depth != 0 {
		return out, fmt.Errorf("%w: input ends %d bits into a codeword", ErrMalformedBitstream, depth)
	}
	return out, nil
}

// Decode implements Coder.
//
// Bits are accumulated first-bit-most-significant until the buffer equals a
// code of the same length.  Since the code is prefix-free, the first match is
// the only one.
func (c *CanonicalCoder[S]) Decode(src BitSource) ([]S, error) {
	var out []S
	var buf Code
	for pos := uint64(0); ; pos++ {
		bit, err := src.ReadBit()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("%w: %w", ErrSourceFailure, err)
		}
		if len(c.table) == 0 {
			return out, ErrEmptyAlphabet
		}

		buf = buf.Append(bit)
		if symbol, found := c.table[buf]; found {
			out = append(out, symbol)
			buf = Code{}
			continue
		}
		if buf.Size >= c.maxSize {
			return out, fmt.Errorf("%w: bits %s ending at position %d match no code", ErrMalformedBitstream, buf, pos)
		}
	}

	if buf.Size != 0 {
		return out, fmt.Errorf("%w: input ends %d bits into a codeword", ErrMalformedBitstream, buf.Size)
	}
	return out, nil
}

// String returns a one-line description of this coder.
func (c *CanonicalCoder[S]) String() string {
	return fmt.Sprintf("(canonical Huffman coder with %d symbols, with coded lengths of %d .. %d bits)",
		len(c.table), c.minSize, c.maxSize)
}

var _ fmt.Stringer = (*CanonicalCoder[int])(nil)

// Dump writes a programmer-readable debugging dump of the coder's decoding
// table to the given writer.
func (c *CanonicalCoder[S]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CanonicalCoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", c.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", c.maxSize)
	keys := make(byCode, 0, len(c.table))
	for hc := range c.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		fmt.Fprintf(&buf, "\tDecode(%s) = %v\n", hc, c.table[hc])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	return lessCode(list[i], list[j])
}

var _ sort.Interface = byCode(nil)

// }}}
