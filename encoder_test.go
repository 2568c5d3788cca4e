package huffcode

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func scenarioInput() []string {
	return strings.Split("C A N N A T A", " ")
}

func codeStrings[S Symbol](codes map[S]Code) map[S]string {
	out := make(map[S]string, len(codes))
	for symbol, hc := range codes {
		out[symbol] = hc.AppendTo(nil).String()
	}
	return out
}

func TestBuild_Scenario(t *testing.T) {
	tree, err := BuildFromSymbols(scenarioInput())
	if err != nil {
		t.Fatalf("BuildFromSymbols failed: %v", err)
	}

	expect := map[string]string{"A": "0", "N": "10", "C": "110", "T": "111"}
	for name, codes := range map[string]map[string]Code{
		"classical": tree.ClassicalCodes(),
		"canonical": tree.CanonicalCodes(),
	} {
		actual := codeStrings(codes)
		if len(actual) != len(expect) {
			t.Errorf("%s: expected %d codes, got %d", name, len(expect), len(actual))
		}
		for symbol, code := range expect {
			if actual[symbol] != code {
				t.Errorf("%s: wrong code for %s:\n\texpect: %s\n\tactual: %s", name, symbol, code, actual[symbol])
			}
		}
	}

	if actual := tree.WeightedLength(); actual != 13 {
		t.Errorf("expected weighted length 13, got %d", actual)
	}
	if tree.MinSize() != 1 || tree.MaxSize() != 3 {
		t.Errorf("expected sizes 1 .. 3, got %d .. %d", tree.MinSize(), tree.MaxSize())
	}
}

func TestBuild_Dump(t *testing.T) {
	freqs := []Frequency[int]{{0, 5}, {1, 9}, {2, 12}, {3, 13}, {4, 16}, {5, 45}}
	tree, err := Build(freqs)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expectDump := strings.Join([]string{
		"Tree{\n",
		"\tSymbols() = 6\n",
		"\tWeightedLength() = 224\n",
		"\tSymbol(0) = {5, \"1100\", \"1110\"}\n",
		"\tSymbol(1) = {9, \"1101\", \"1111\"}\n",
		"\tSymbol(2) = {12, \"100\", \"100\"}\n",
		"\tSymbol(3) = {13, \"101\", \"101\"}\n",
		"\tSymbol(4) = {16, \"111\", \"110\"}\n",
		"\tSymbol(5) = {45, \"0\", \"0\"}\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = tree.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestBuild_TieBreak(t *testing.T) {
	type testRow struct {
		name   string
		freqs  []Frequency[string]
		expect map[string]string
	}

	testData := [...]testRow{
		{
			name:   "leaf-vs-leaf",
			freqs:  []Frequency[string]{{"B", 1}, {"A", 1}},
			expect: map[string]string{"A": "0", "B": "1"},
		},
		{
			name:   "leaf-before-internal",
			freqs:  []Frequency[string]{{"A", 1}, {"B", 1}, {"C", 2}},
			expect: map[string]string{"C": "0", "A": "10", "B": "11"},
		},
		{
			name:   "internal-by-creation-order",
			freqs:  []Frequency[string]{{"D", 1}, {"C", 1}, {"B", 1}, {"A", 1}},
			expect: map[string]string{"A": "00", "B": "01", "C": "10", "D": "11"},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			tree, err := Build(row.freqs)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			actual := codeStrings(tree.ClassicalCodes())
			for symbol, code := range row.expect {
				if actual[symbol] != code {
					t.Errorf("wrong code for %s:\n\texpect: %s\n\tactual: %s", symbol, code, actual[symbol])
				}
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	tree, err := BuildFromSymbols([]string(nil))
	if err != nil {
		t.Fatalf("BuildFromSymbols failed: %v", err)
	}
	if !tree.Empty() || tree.Root() != nil {
		t.Errorf("expected an empty tree")
	}
	if n := len(tree.ClassicalCodes()); n != 0 {
		t.Errorf("expected no classical codes, got %d", n)
	}
	if n := len(tree.CanonicalCodes()); n != 0 {
		t.Errorf("expected no canonical codes, got %d", n)
	}

	var bits Bits
	if err := NewClassicalCoder(tree).Encode(&bits, nil); err != nil {
		t.Errorf("Encode of empty input failed: %v", err)
	}
	if len(bits) != 0 {
		t.Errorf("expected no output, got %s", bits)
	}

	err = NewClassicalCoder(tree).Encode(&bits, []string{"A"})
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("expected ErrUnknownSymbol, got %v", err)
	}
}

func TestBuild_SingleSymbol(t *testing.T) {
	input := []rune("zzzz")
	tree, err := BuildFromSymbols(input)
	if err != nil {
		t.Fatalf("BuildFromSymbols failed: %v", err)
	}
	if _, ok := tree.Root().(*Leaf[rune]); !ok {
		t.Errorf("expected the root to be a leaf, got %T", tree.Root())
	}

	expect := MakeCode(1, 0)
	if actual := tree.ClassicalCodes()['z']; actual != expect {
		t.Errorf("wrong classical code: expect %v, got %v", expect, actual)
	}
	if actual := tree.CanonicalCodes()['z']; actual != expect {
		t.Errorf("wrong canonical code: expect %v, got %v", expect, actual)
	}

	var bits Bits
	if err := NewClassicalCoder(tree).Encode(&bits, input); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if actual := bits.String(); actual != "0000" {
		t.Errorf("wrong bits:\n\texpect: 0000\n\tactual: %s", actual)
	}
}

func TestBuild_InvalidFrequencies(t *testing.T) {
	for name, freqs := range map[string][]Frequency[int]{
		"zero-count": {{1, 2}, {2, 0}},
		"duplicate":  {{1, 2}, {1, 3}},
	} {
		if _, err := Build(freqs); !errors.Is(err, ErrInvalidFrequencies) {
			t.Errorf("%s: expected ErrInvalidFrequencies, got %v", name, err)
		}
	}
}

func TestBuild_CodeTooLong(t *testing.T) {
	// Fibonacci weights give a maximally skewed tree, one level per symbol.
	freqs := make([]Frequency[int], 0, MaxCodeSize+2)
	a, b := uint64(1), uint64(1)
	for symbol := 0; symbol < MaxCodeSize+2; symbol++ {
		freqs = append(freqs, Frequency[int]{symbol, a})
		a, b = b, a+b
	}
	if _, err := Build(freqs); !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("expected ErrCodeTooLong, got %v", err)
	}
}

func randomInput(rng *rand.Rand) []int {
	alphabet := 1 + rng.Intn(20)
	input := make([]int, 1+rng.Intn(200))
	for i := range input {
		// Squaring skews the distribution so code lengths vary.
		x := rng.Intn(alphabet)
		input[i] = x * x % alphabet
	}
	return input
}

func assertPrefixFree[S Symbol](t *testing.T, name string, codes map[S]Code) {
	t.Helper()
	for a, ca := range codes {
		for b, cb := range codes {
			if a != b && ca.HasPrefix(cb) {
				t.Errorf("%s: code %v of %v has code %v of %v as a prefix", name, ca, a, cb, b)
			}
		}
	}
}

func TestBuild_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		input := randomInput(rng)
		tree, err := BuildFromSymbols(input)
		if err != nil {
			t.Fatalf("BuildFromSymbols failed: %v", err)
		}

		classical := tree.ClassicalCodes()
		canonical := tree.CanonicalCodes()
		assertPrefixFree(t, "classical", classical)
		assertPrefixFree(t, "canonical", canonical)

		for symbol, hc := range classical {
			if canonical[symbol].Size != hc.Size {
				t.Errorf("length of %d differs: classical %v, canonical %v", symbol, hc, canonical[symbol])
			}
		}

		var bits Bits
		if err := NewClassicalCoder(tree).Encode(&bits, input); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if uint64(len(bits)) != tree.WeightedLength() {
			t.Errorf("expected %d bits, got %d", tree.WeightedLength(), len(bits))
		}
	}
}

// bestWeightedLength finds by brute force the smallest weighted length of any
// prefix code for counts, i.e. of any lengths satisfying Kraft's inequality.
func bestWeightedLength(counts []uint64) uint64 {
	n := len(counts)
	if n == 1 {
		return counts[0]
	}
	maxLen := n - 1
	lengths := make([]int, n)
	best := ^uint64(0)
	var try func(i int, kraft uint64)
	try = func(i int, kraft uint64) {
		if kraft > 1<<maxLen {
			return
		}
		if i == n {
			var sum uint64
			for j, l := range lengths {
				sum += counts[j] * uint64(l)
			}
			if sum < best {
				best = sum
			}
			return
		}
		for l := 1; l <= maxLen; l++ {
			lengths[i] = l
			try(i+1, kraft+1<<(maxLen-l))
		}
	}
	try(0, 0)
	return best
}

func TestBuild_Optimal(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for iter := 0; iter < 300; iter++ {
		n := 1 + rng.Intn(5)
		counts := make([]uint64, n)
		freqs := make([]Frequency[int], n)
		for i := range counts {
			counts[i] = 1 + uint64(rng.Intn(30))
			freqs[i] = Frequency[int]{i, counts[i]}
		}

		tree, err := Build(freqs)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		expect := bestWeightedLength(counts)
		if actual := tree.WeightedLength(); actual != expect {
			t.Errorf("counts %v: expected weighted length %d, got %d", counts, expect, actual)
		}
	}
}
