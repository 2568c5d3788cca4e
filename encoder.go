package huffcode

import (
	"fmt"
)

// Coder encodes symbols to bits and decodes them back against one code
// table.  The coders in this package keep all per-call state on the stack,
// so one Coder may serve concurrent Encode and Decode calls.
type Coder[S Symbol] interface {
	// Encode writes the code of each symbol, in order, to sink and then
	// flushes it.  A symbol with no code fails with ErrUnknownSymbol; bits
	// already written for earlier symbols stay in the sink unflushed.
	Encode(sink BitSink, symbols []S) error

	// Decode reads bits from src until io.EOF and returns the decoded
	// symbols.  Input that ends inside a codeword, or that matches no
	// codeword, fails with ErrMalformedBitstream.
	Decode(src BitSource) ([]S, error)
}

// ClassicalCoder is a Coder for the classical code of a Tree.  It decodes by
// walking the tree.
type ClassicalCoder[S Symbol] struct {
	tree *Tree[S]
}

// NewClassicalCoder returns a ClassicalCoder bound to t.
func NewClassicalCoder[S Symbol](t *Tree[S]) *ClassicalCoder[S] {
	return &ClassicalCoder[S]{tree: t}
}

// Encode implements Coder.
func (c *ClassicalCoder[S]) Encode(sink BitSink, symbols []S) error {
	return encode(c.tree.classical, sink, symbols)
}

// CanonicalCoder is a Coder for a canonical code.  It needs only the length
// of each symbol's code, not the tree.
type CanonicalCoder[S Symbol] struct {
	lengths LengthTable[S]
	codes   map[S]Code
	table   map[Code]S
	minSize byte
	maxSize byte
}

// NewCanonicalCoder builds the canonical code described by lengths and
// returns a CanonicalCoder for it.  See CanonicalCodes for the requirements
// on lengths.
func NewCanonicalCoder[S Symbol](lengths LengthTable[S]) (*CanonicalCoder[S], error) {
	codes, err := CanonicalCodes(lengths)
	if err != nil {
		return nil, err
	}

	c := &CanonicalCoder[S]{
		lengths: make(LengthTable[S], len(lengths)),
		codes:   codes,
		table:   make(map[Code]S, len(codes)),
	}
	for symbol, hc := range codes {
		c.lengths[symbol] = hc.Size
		c.table[hc] = symbol
		if len(c.table) == 1 {
			c.minSize, c.maxSize = hc.Size, hc.Size
		} else if c.minSize > hc.Size {
			c.minSize = hc.Size
		} else if c.maxSize < hc.Size {
			c.maxSize = hc.Size
		}
	}

	log.Debugf("built canonical coder: %d symbols, code sizes %d .. %d", len(codes), c.minSize, c.maxSize)
	return c, nil
}

// Encode implements Coder.
func (c *CanonicalCoder[S]) Encode(sink BitSink, symbols []S) error {
	return encode(c.codes, sink, symbols)
}

// Codes returns a copy of the canonical code of each symbol.
func (c *CanonicalCoder[S]) Codes() map[S]Code {
	return copyCodes(c.codes)
}

// Lengths returns a copy of the length table this coder was built from.
func (c *CanonicalCoder[S]) Lengths() LengthTable[S] {
	out := make(LengthTable[S], len(c.lengths))
	for symbol, size := range c.lengths {
		out[symbol] = size
	}
	return out
}

// MinSize is the bit length of the shortest legal code.
func (c *CanonicalCoder[S]) MinSize() byte {
	return c.minSize
}

// MaxSize is the bit length of the longest legal code.
func (c *CanonicalCoder[S]) MaxSize() byte {
	return c.maxSize
}

func encode[S Symbol](codes map[S]Code, sink BitSink, symbols []S) error {
	for index, symbol := range symbols {
		hc, found := codes[symbol]
		if !found {
			return fmt.Errorf("%w: %v at index %d", ErrUnknownSymbol, symbol, index)
		}
		for i := byte(0); i < hc.Size; i++ {
			if err := sink.WriteBit(hc.Bit(i)); err != nil {
				return fmt.Errorf("%w: %w", ErrSinkFailure, err)
			}
		}
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrSinkFailure, err)
	}
	return nil
}

var (
	_ Coder[int] = (*ClassicalCoder[int])(nil)
	_ Coder[int] = (*CanonicalCoder[int])(nil)
)
