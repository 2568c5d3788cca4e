// Package huffcode builds optimal prefix-free binary codes from symbol
// frequencies and uses them to turn symbol sequences into bit sequences and
// back.
//
// A Tree is built by the classical greedy merge of the two least frequent
// nodes.  Its leaf paths give the classical code of each symbol.  The same
// per-symbol code lengths also determine a canonical code, which can be
// rebuilt from a LengthTable alone, so only the lengths need to travel with
// the encoded data.
//
// ClassicalCoder decodes by walking the tree; CanonicalCoder decodes with a
// table rebuilt from the lengths.  Both write to a BitSink and read from a
// BitSource.  Bits keeps one element per bit; PackedWriter and PackedReader
// pack eight bits per byte.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffcode
