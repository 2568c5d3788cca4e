package huffcode

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/icza/bitio"
)

// Bit is a single binary digit, Zero or One.
type Bit uint8

const (
	Zero Bit = 0
	One  Bit = 1
)

// BitSink receives encoded bits.  Flush is called once at the end of each
// successful Encode.
type BitSink interface {
	WriteBit(b Bit) error
	Flush() error
}

// BitSource supplies bits to decode.  ReadBit returns io.EOF once the source
// is exhausted.
type BitSource interface {
	ReadBit() (Bit, error)
}

// Bits is an in-memory bit sequence holding one element per bit.  A *Bits is
// a BitSink.
type Bits []Bit

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(str string) (Bits, error) {
	out := make(Bits, 0, len(str))
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			out = append(out, Zero)
		case '1':
			out = append(out, One)
		default:
			return nil, fmt.Errorf("huffcode: invalid character %q in bit string", str[i])
		}
	}
	return out, nil
}

// WriteBit appends b.
func (list *Bits) WriteBit(b Bit) error {
	*list = append(*list, b&1)
	return nil
}

// Flush does nothing.
func (list *Bits) Flush() error {
	return nil
}

// Reader returns a BitSource that reads the bits of list in order.
func (list Bits) Reader() *BitsReader {
	return &BitsReader{list: list}
}

// String returns the bits as a string of '0' and '1' characters.
func (list Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(list))
	for _, b := range list {
		sb.WriteByte('0' + byte(b&1))
	}
	return sb.String()
}

var _ BitSink = (*Bits)(nil)
var _ fmt.Stringer = Bits(nil)

// BitsReader is a BitSource over a Bits.
type BitsReader struct {
	list Bits
	pos  int
}

// ReadBit returns the next bit, or io.EOF.
func (r *BitsReader) ReadBit() (Bit, error) {
	if r.pos >= len(r.list) {
		return 0, io.EOF
	}
	b := r.list[r.pos]
	r.pos++
	return b, nil
}

var _ BitSource = (*BitsReader)(nil)

// PackedWriter is a BitSink that packs bits eight to a byte, first bit in the
// most significant position.  Flush pads the final byte with zero bits, so
// the reader must be told the exact number of bits; see BitsWritten.
type PackedWriter struct {
	w  io.Writer
	bw *bitio.Writer
	n  uint64
}

// NewPackedWriter returns a PackedWriter that writes to w.  If w has a
// Flush() error method, it is called from Flush.
func NewPackedWriter(w io.Writer) *PackedWriter {
	return &PackedWriter{w: w, bw: bitio.NewWriter(w)}
}

// WriteBit buffers one bit.
func (pw *PackedWriter) WriteBit(b Bit) error {
	if err := pw.bw.WriteBool(b&1 == One); err != nil {
		return err
	}
	pw.n++
	return nil
}

// Flush writes out any partial byte and flushes the underlying writer.
func (pw *PackedWriter) Flush() error {
	if _, err := pw.bw.Align(); err != nil {
		return err
	}
	if f, ok := pw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// BitsWritten returns the number of bits written so far, not counting
// padding.
func (pw *PackedWriter) BitsWritten() uint64 {
	return pw.n
}

var _ BitSink = (*PackedWriter)(nil)

// PackedReader is a BitSource that unpacks bits written by PackedWriter.  It
// returns exactly the number of bits it was constructed with and then io.EOF.
type PackedReader struct {
	br        *bitio.Reader
	remaining uint64
}

// NewPackedReader returns a PackedReader that reads numBits bits from r.
func NewPackedReader(r io.Reader, numBits uint64) *PackedReader {
	return &PackedReader{br: bitio.NewReader(r), remaining: numBits}
}

// ReadBit returns the next bit.  Running out of input before numBits bits
// have been read is reported as io.ErrUnexpectedEOF.
func (pr *PackedReader) ReadBit() (Bit, error) {
	if pr.remaining == 0 {
		return 0, io.EOF
	}
	set, err := pr.br.ReadBool()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	pr.remaining--
	if set {
		return One, nil
	}
	return Zero, nil
}

var _ BitSource = (*PackedReader)(nil)
