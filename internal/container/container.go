// Package container implements a self-describing file format for
// byte-oriented data compressed with a canonical Huffman code.
//
// Layout:
//
//     "HUFC"                 magic
//     uvarint                number of symbols N
//     N × (symbol, size)     one byte each, in canonical order
//     uvarint                number of payload bits
//     payload                packed bits, first bit most significant,
//                            zero-padded to a whole byte
//
package container

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffcode"
)

var log = logging.MustGetLogger("huffcode/container")

// Magic is the four-byte signature at the start of every container.
var Magic = [4]byte{'H', 'U', 'F', 'C'}

// ErrBadHeader is returned for a container whose header cannot be parsed.
var ErrBadHeader = errors.New("container: bad header")

// Header describes the code and payload size of a container.
type Header struct {
	Lengths huffcode.LengthTable[byte]
	NumBits uint64
}

// Reader is the input accepted by ReadHeader.
type Reader interface {
	io.Reader
	io.ByteReader
}

// WriteHeader writes h to w.
func WriteHeader(w io.Writer, h Header) error {
	entries := h.Lengths.Entries()

	buf := make([]byte, 0, len(Magic)+2*binary.MaxVarintLen64+2*len(entries))
	buf = append(buf, Magic[:]...)
	buf = binary.AppendUvarint(buf, uint64(len(entries)))
	for _, item := range entries {
		buf = append(buf, item.Symbol, item.Size)
	}
	buf = binary.AppendUvarint(buf, h.NumBits)

	_, err := w.Write(buf)
	return err
}

// ReadHeader reads a Header from r.  The length table is returned as read;
// it is validated when a coder is built from it.
func ReadHeader(r Reader) (Header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, fmt.Errorf("%w: magic: %w", ErrBadHeader, err)
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("%w: wrong magic %q", ErrBadHeader, magic[:])
	}

	numSymbols, err := binary.ReadUvarint(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: symbol count: %w", ErrBadHeader, err)
	}
	if numSymbols > 256 {
		return Header{}, fmt.Errorf("%w: %d symbols in a byte alphabet", ErrBadHeader, numSymbols)
	}

	lengths := make(huffcode.LengthTable[byte], numSymbols)
	for i := uint64(0); i < numSymbols; i++ {
		var pair [2]byte
		if _, err := io.ReadFull(r, pair[:]); err != nil {
			return Header{}, fmt.Errorf("%w: length table: %w", ErrBadHeader, err)
		}
		if _, dupe := lengths[pair[0]]; dupe {
			return Header{}, fmt.Errorf("%w: symbol %d listed twice", ErrBadHeader, pair[0])
		}
		lengths[pair[0]] = pair[1]
	}

	numBits, err := binary.ReadUvarint(r)
	if err != nil {
		return Header{}, fmt.Errorf("%w: bit count: %w", ErrBadHeader, err)
	}

	return Header{Lengths: lengths, NumBits: numBits}, nil
}

// Compress writes data to w as a container.
func Compress(w io.Writer, data []byte) error {
	tree, err := huffcode.BuildFromSymbols(data)
	if err != nil {
		return err
	}

	coder, err := huffcode.NewCanonicalCoder(tree.Lengths())
	if err != nil {
		return err
	}

	var payload bytes.Buffer
	pw := huffcode.NewPackedWriter(&payload)
	if err := coder.Encode(pw, data); err != nil {
		return err
	}

	h := Header{Lengths: tree.Lengths(), NumBits: pw.BitsWritten()}
	if err := WriteHeader(w, h); err != nil {
		return fmt.Errorf("%w: %w", huffcode.ErrSinkFailure, err)
	}
	if _, err := payload.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", huffcode.ErrSinkFailure, err)
	}

	log.Debugf("compressed %d bytes into %d payload bits", len(data), h.NumBits)
	return nil
}

// Decompress reads a container from r and returns the original data.
func Decompress(r io.Reader) ([]byte, error) {
	br, ok := r.(Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	coder, err := huffcode.NewCanonicalCoder(h.Lengths)
	if err != nil {
		return nil, err
	}

	data, err := coder.Decode(huffcode.NewPackedReader(br, h.NumBits))
	if err != nil {
		return nil, err
	}

	log.Debugf("decompressed %d payload bits into %d bytes", h.NumBits, len(data))
	return data, nil
}
