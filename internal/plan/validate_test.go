package plan

import "testing"

// TestPositiveNumber verifies that zero, negative, and non-numeric input is
// rejected while valid measurements (including decimals) pass through.
func TestPositiveNumber(t *testing.T) {
	cases := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"10", 10, true},
		{"0.5", 0.5, true},
		{"  7 ", 7, true},
		{"400", 400, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
		{"1e2", 100, true},
	}
	for _, tc := range cases {
		got, ok := PositiveNumber(tc.input)
		if ok != tc.wantOK {
			t.Errorf("PositiveNumber(%q): ok = %v, want %v", tc.input, ok, tc.wantOK)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("PositiveNumber(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// TestPositiveInteger verifies parsing, flooring, and the fallback
// substitution for anything that is not a positive integer.
func TestPositiveInteger(t *testing.T) {
	cases := []struct {
		input    string
		fallback int
		want     int
	}{
		{"4", 1, 4},
		{"4.9", 1, 4},
		{"1", 1, 1},
		{"0", 1, 1},
		{"-3", 1, 1},
		{"0.5", 1, 1},
		{"abc", 1, 1},
		{"", 1, 1},
		{"12", 3, 12},
		{"x", 3, 3},
	}
	for _, tc := range cases {
		if got := PositiveInteger(tc.input, tc.fallback); got != tc.want {
			t.Errorf("PositiveInteger(%q, %d) = %d, want %d", tc.input, tc.fallback, got, tc.want)
		}
	}
}
