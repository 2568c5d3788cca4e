package huffcode

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Symbol is the constraint satisfied by symbols in an arbitrary alphabet.
// Symbols are compared with cmp.Compare; floating-point NaN is not a valid
// symbol.
type Symbol interface {
	cmp.Ordered
}

// Frequency is the number of occurrences of one Symbol in an input.
type Frequency[S Symbol] struct {
	Symbol S
	Count  uint64
}

// Count tallies the occurrences of each distinct symbol in input.  The result
// is ordered by ascending symbol and contains each symbol exactly once.
func Count[S Symbol](input []S) []Frequency[S] {
	counts := make(map[S]uint64)
	for _, symbol := range input {
		counts[symbol]++
	}

	out := make([]Frequency[S], 0, len(counts))
	for symbol, count := range counts {
		out = append(out, Frequency[S]{symbol, count})
	}
	sortFrequencies(out)
	return out
}

// CountBytes tallies the bytes read from r until EOF.  Errors from r are
// wrapped in ErrSourceFailure.
func CountBytes(r io.Reader) ([]Frequency[byte], error) {
	var counts [256]uint64
	br := bufio.NewReader(r)
	for {
		ch, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceFailure, err)
		}
		counts[ch]++
	}

	var out []Frequency[byte]
	for ch, count := range counts {
		if count != 0 {
			out = append(out, Frequency[byte]{byte(ch), count})
		}
	}
	return out, nil
}

func sortFrequencies[S Symbol](list []Frequency[S]) {
	slices.SortFunc(list, func(a, b Frequency[S]) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})
}
