package huffcode

import (
	"errors"
)

var (
	// ErrEmptyAlphabet is returned when a coder bound to a code table with no
	// symbols is asked to decode a non-empty bit stream.
	ErrEmptyAlphabet = errors.New("huffcode: empty alphabet")

	// ErrUnknownSymbol is returned by Encode for a symbol that has no code in
	// the bound table.
	ErrUnknownSymbol = errors.New("huffcode: unknown symbol")

	// ErrMalformedBitstream is returned by Decode for a bit stream that does
	// not parse into whole codewords.
	ErrMalformedBitstream = errors.New("huffcode: malformed bitstream")

	// ErrSinkFailure wraps errors reported by a BitSink.
	ErrSinkFailure = errors.New("huffcode: sink failure")

	// ErrSourceFailure wraps errors reported by a BitSource or byte source.
	ErrSourceFailure = errors.New("huffcode: source failure")

	// ErrInvalidFrequencies is returned by Build for zero counts or repeated
	// symbols.
	ErrInvalidFrequencies = errors.New("huffcode: invalid frequency table")

	// ErrInvalidLengths is returned for a length table that does not describe
	// a complete prefix code.
	ErrInvalidLengths = errors.New("huffcode: invalid code lengths")

	// ErrCodeTooLong is returned when a code would exceed MaxCodeSize bits.
	ErrCodeTooLong = errors.New("huffcode: code too long")
)
