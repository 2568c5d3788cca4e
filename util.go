package huffcode

import (
	"math"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffcode")

// saturatingAdd returns a+b, clamped to math.MaxUint64.
func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		sum = math.MaxUint64
	}
	return sum
}
