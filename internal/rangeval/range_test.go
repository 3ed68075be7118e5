package rangeval

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	r := New(0, 63)
	if r.IsUnknown() || r.Lo != 0 || r.Hi != 63 {
		t.Errorf("New(0, 63) = %s", r)
	}
	// lo > hi 退化为未知
	if !New(5, 3).IsUnknown() {
		t.Error("New(5, 3) should be unknown")
	}
	if s := Single(7); s.Lo != 7 || s.Hi != 7 {
		t.Errorf("Single(7) = %s", s)
	}
	if !Unknown().IsUnknown() {
		t.Error("Unknown() should be unknown")
	}
}

func TestContains(t *testing.T) {
	r := New(0, 10)
	for _, v := range []int64{0, 5, 10} {
		if !r.Contains(v) {
			t.Errorf("%s should contain %d", r, v)
		}
	}
	for _, v := range []int64{-1, 11} {
		if r.Contains(v) {
			t.Errorf("%s should not contain %d", r, v)
		}
	}
	if Unknown().Contains(0) {
		t.Error("unknown range contains nothing")
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected Range
	}{
		{"basic", New(0, 10), New(5, 20), New(5, 30)},
		{"negative", New(-5, 5), New(-1, 1), New(-6, 6)},
		{"unknown left", Unknown(), New(0, 1), Unknown()},
		{"unknown right", New(0, 1), Unknown(), Unknown()},
		{"overflow", New(math.MaxInt64-1, math.MaxInt64), New(2, 2), Unknown()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); got != tt.expected {
				t.Errorf("%s.Add(%s) = %s, want %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected Range
	}{
		{"basic", New(0, 63), Single(128), New(0, 8064)},
		{"negative factor", New(0, 10), Single(-1), New(-10, 0)},
		{"mixed signs", New(-2, 3), New(-4, 5), New(-12, 15)},
		{"unknown", Unknown(), Single(2), Unknown()},
		{"overflow", New(0, math.MaxInt64), Single(2), Unknown()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mul(tt.b); got != tt.expected {
				t.Errorf("%s.Mul(%s) = %s, want %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected Range
	}{
		{"basic", New(0, 8191), Single(128), New(0, 63)},
		{"negative numerator", New(-7, 7), Single(2), New(-4, 3)},
		{"divisor range", New(0, 100), New(2, 4), New(0, 50)},
		{"zero divisor", New(0, 10), Single(0), Unknown()},
		{"negative divisor", New(0, 10), Single(-2), Unknown()},
		{"unknown", Unknown(), Single(2), Unknown()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.FloorDiv(tt.b); got != tt.expected {
				t.Errorf("%s.FloorDiv(%s) = %s, want %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected Range
	}{
		{"identity when below divisor", New(0, 100), Single(128), New(0, 100)},
		{"wraps", New(0, 200), Single(128), New(0, 127)},
		{"negative numerator", New(-5, 5), Single(4), New(0, 3)},
		{"zero divisor", New(0, 10), Single(0), Unknown()},
		{"unknown", Unknown(), Single(4), Unknown()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Mod(tt.b); got != tt.expected {
				t.Errorf("%s.Mod(%s) = %s, want %s", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSltAll(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected bool
	}{
		{"strictly below", New(0, 127), Single(128), true},
		{"touches", New(0, 128), Single(128), false},
		{"overlaps", New(0, 200), New(100, 300), false},
		{"unknown left", Unknown(), Single(128), false},
		{"unknown right", New(0, 1), Unknown(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SltAll(tt.b); got != tt.expected {
				t.Errorf("%s.SltAll(%s) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestRangeString(t *testing.T) {
	if got := New(0, 63).String(); got != "[0, 63]" {
		t.Errorf("String() = %q", got)
	}
	if got := Unknown().String(); got != "[?, ?]" {
		t.Errorf("String() = %q", got)
	}
}

func TestFloorDivScalar(t *testing.T) {
	tests := []struct {
		a, d, expected int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 4, -2},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.d); got != tt.expected {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.d, got, tt.expected)
		}
	}
}
