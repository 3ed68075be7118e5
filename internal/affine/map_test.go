package affine

import "testing"

func TestMapString(t *testing.T) {
	tests := []struct {
		name     string
		m        Map
		expected string
	}{
		{
			"dims only",
			NewMap(2, 0, []Expr{&Dim{Pos: 0}, &Dim{Pos: 1}}),
			"(d0, d1) -> (d0, d1)",
		},
		{
			"with symbol",
			NewMap(2, 1, []Expr{
				&FloorDiv{Num: &Add{LHS: mulTerm(&Dim{Pos: 0}, 128), RHS: &Dim{Pos: 1}}, Den: 128},
				&Sym{Pos: 0},
			}),
			"(d0, d1)[s0] -> ((d0 * 128 + d1) floordiv 128, s0)",
		},
		{
			"no dims",
			NewMap(0, 1, []Expr{&Sym{Pos: 0}}),
			"()[s0] -> (s0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMapReplaceResults(t *testing.T) {
	m := NewMap(2, 0, []Expr{&Dim{Pos: 0}, &Dim{Pos: 1}})

	replaced, err := m.ReplaceResults([]Expr{&Dim{Pos: 1}, &Dim{Pos: 0}})
	if err != nil {
		t.Fatalf("ReplaceResults error: %v", err)
	}
	if replaced.NumDims != 2 || replaced.NumSyms != 0 {
		t.Errorf("arity changed: dims=%d syms=%d", replaced.NumDims, replaced.NumSyms)
	}
	if replaced.String() != "(d0, d1) -> (d1, d0)" {
		t.Errorf("String() = %q", replaced.String())
	}

	// 结果数量不一致必须报错
	if _, err := m.ReplaceResults([]Expr{&Dim{Pos: 0}}); err == nil {
		t.Error("expected error for result count mismatch")
	}
}
