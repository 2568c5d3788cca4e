package huffcode

import (
	"fmt"
	"strconv"
)

// MaxCodeSize is the longest code, in bits, that a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the low Size bits of Bits, i.e. the bit nearest the
	// root of the tree.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("%w: %d bits", ErrCodeTooLong, len(str))
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(Zero)
		case '1':
			hc = hc.Append(One)
		default:
			return Code{}, fmt.Errorf("huffcode: invalid character %q in code %q", str[i], str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of the Code, counting from the first.
func (hc Code) Bit(i byte) Bit {
	return Bit((hc.Bits >> (hc.Size - 1 - i)) & 1)
}

// Append returns the Code extended by one bit.  The caller must ensure that
// hc.Size < MaxCodeSize.
func (hc Code) Append(b Bit) Code {
	return MakeCode(hc.Size+1, (hc.Bits<<1)|uint64(b&1))
}

// HasPrefix reports whether prefix is a prefix of hc.  Every Code is a prefix
// of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// AppendTo appends the bits of this Code to list.
func (hc Code) AppendTo(list Bits) Bits {
	for i := byte(0); i < hc.Size; i++ {
		list = append(list, hc.Bit(i))
	}
	return list
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

func lessCode(a, b Code) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Bits < b.Bits
}
