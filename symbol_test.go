package huffcode

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCount(t *testing.T) {
	input := strings.Split("C A N N A T A", " ")
	expect := []Frequency[string]{
		{"A", 3},
		{"C", 1},
		{"N", 2},
		{"T", 1},
	}
	actual := Count(input)
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong frequencies:\n\texpect: %v\n\tactual: %v", expect, actual)
	}

	if actual := Count([]string(nil)); len(actual) != 0 {
		t.Errorf("expected no frequencies for empty input, got %v", actual)
	}
}

func TestCountBytes(t *testing.T) {
	expect := []Frequency[byte]{
		{'A', 3},
		{'C', 1},
		{'N', 2},
		{'T', 1},
	}
	actual, err := CountBytes(strings.NewReader("CANNATA"))
	if err != nil {
		t.Fatalf("CountBytes failed: %v", err)
	}
	if !reflect.DeepEqual(expect, actual) {
		t.Errorf("wrong frequencies:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

type failingReader struct {
	err error
}

func (r failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func TestCountBytes_SourceFailure(t *testing.T) {
	cause := errors.New("disk on fire")
	_, err := CountBytes(failingReader{cause})
	if !errors.Is(err, ErrSourceFailure) {
		t.Errorf("expected ErrSourceFailure, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected the cause to be wrapped, got %v", err)
	}
}
