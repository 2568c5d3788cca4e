package huffcode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// LengthTable maps each symbol of a code to the bit length of its code.  It
// is all that is needed to rebuild a canonical Huffman code.
type LengthTable[S Symbol] map[S]byte

// SymbolSize is one entry of a LengthTable.
type SymbolSize[S Symbol] struct {
	Symbol S
	Size   byte
}

// Entries returns the table's entries in canonical order: ascending by
// size, then ascending by symbol.
func (lt LengthTable[S]) Entries() []SymbolSize[S] {
	sorted := make(bySize[S], 0, len(lt))
	for symbol, size := range lt {
		sorted = append(sorted, SymbolSize[S]{symbol, size})
	}
	sorted.Sort()
	return sorted
}

// MarshalJSON encodes the table as an array of [symbol, size] pairs in
// canonical order.
func (lt LengthTable[S]) MarshalJSON() ([]byte, error) {
	entries := lt.Entries()
	pairs := make([][2]interface{}, len(entries))
	for index, item := range entries {
		pairs[index] = [2]interface{}{item.Symbol, item.Size}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (lt *LengthTable[S]) UnmarshalJSON(raw []byte) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		*lt = nil
		return nil
	}

	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return err
	}

	out := make(LengthTable[S], len(pairs))
	for _, pair := range pairs {
		var symbol S
		var size byte
		if err := json.Unmarshal(pair[0], &symbol); err != nil {
			return err
		}
		if err := json.Unmarshal(pair[1], &size); err != nil {
			return err
		}
		if _, dupe := out[symbol]; dupe {
			return fmt.Errorf("%w: symbol %v listed twice", ErrInvalidLengths, symbol)
		}
		out[symbol] = size
	}
	*lt = out
	return nil
}

var (
	_ json.Marshaler   = LengthTable[int](nil)
	_ json.Unmarshaler = (*LengthTable[int])(nil)
)

// CanonicalCodes assigns a canonical Huffman code to every symbol in lengths,
// per the algorithm detailed at
// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.
//
// Every size must be between 1 and MaxCodeSize, and the sizes must describe a
// complete prefix code.  The one exception is a table with a single symbol,
// which must have size 1 and receives the code "0".  An empty table yields an
// empty result.
func CanonicalCodes[S Symbol](lengths LengthTable[S]) (map[S]Code, error) {
	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := lengths.Entries()
	codes := make(map[S]Code, len(sorted))
	if len(sorted) == 0 {
		return codes, nil
	}

	for _, item := range sorted {
		if item.Size == 0 || item.Size > MaxCodeSize {
			return nil, fmt.Errorf("%w: symbol %v has size %d", ErrInvalidLengths, item.Symbol, item.Size)
		}
	}

	if len(sorted) == 1 {
		item := sorted[0]
		if item.Size != 1 {
			return nil, fmt.Errorf("%w: sole symbol %v has size %d, expected 1", ErrInvalidLengths, item.Symbol, item.Size)
		}
		codes[item.Symbol] = MakeCode(1, 0)
		return codes, nil
	}

	// Step 2: assign the codes sequentially.  nextCode may run one past
	// the range of lastSize between tiers; that carry is absorbed by the
	// shift into the next tier, or else the table is oversubscribed.

	lastSize := sorted[0].Size
	nextCode := uint64(0)
	wrapped := false
	for _, item := range sorted {
		if item.Size > lastSize {
			if wrapped || nextCode>>(MaxCodeSize-(item.Size-lastSize)) != 0 {
				return nil, fmt.Errorf("%w: oversubscribed at size %d", ErrInvalidLengths, item.Size)
			}
			nextCode <<= item.Size - lastSize
			lastSize = item.Size
		}
		if wrapped || (lastSize < MaxCodeSize && nextCode >= uint64(1)<<lastSize) {
			return nil, fmt.Errorf("%w: oversubscribed at size %d", ErrInvalidLengths, lastSize)
		}
		codes[item.Symbol] = MakeCode(lastSize, nextCode)
		nextCode++
		if nextCode == 0 {
			wrapped = true
		}
	}

	// Step 3: forbid incomplete codes.

	complete := nextCode == uint64(1)<<lastSize
	if lastSize == MaxCodeSize {
		complete = wrapped
	}
	if !complete {
		return nil, fmt.Errorf("%w: incomplete code", ErrInvalidLengths)
	}

	return codes, nil
}

// type bySize {{{

type bySize[S Symbol] []SymbolSize[S]

func (list bySize[S]) Len() int {
	return len(list)
}

func (list bySize[S]) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize[S]) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Symbol < b.Symbol
}

func (list bySize[S]) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize[int](nil)

// }}}
