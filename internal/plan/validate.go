package plan

import (
	"math"
	"strconv"
	"strings"
)

// PositiveNumber parses a numeric string from the builder and reports whether
// it is a usable measurement. Zero, negatives, NaN, infinities and anything
// unparseable all come back as not-ok; the caller decides whether that means
// skipping a phase or an entire interval.
func PositiveNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}

// PositiveInteger parses and floors a numeric string, substituting fallback
// for anything that does not come out a positive integer. Used for
// repetition counts, where invalid input coerces to 1 rather than dropping
// the interval.
func PositiveInteger(raw string, fallback int) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	n := int(math.Floor(v))
	if n <= 0 {
		return fallback
	}
	return n
}
