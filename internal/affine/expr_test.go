package affine

import "testing"

func TestExprString(t *testing.T) {
	tests := []struct {
		expr     Expr
		expected string
	}{
		{&Const{Value: 42}, "42"},
		{&Const{Value: -3}, "-3"},
		{&Dim{Pos: 0}, "d0"},
		{&Sym{Pos: 1}, "s1"},
		{&Add{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 1}}, "d0 + 1"},
		{&Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 128}}, "d0 * 128"},
		{
			&FloorDiv{Num: &Add{LHS: &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 128}}, RHS: &Dim{Pos: 1}}, Den: 128},
			"(d0 * 128 + d1) floordiv 128",
		},
		{
			&Mod{Num: &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 128}}, Den: 128},
			"(d0 * 128) mod 128",
		},
		{
			&Mul{LHS: &Add{LHS: &Dim{Pos: 0}, RHS: &Dim{Pos: 1}}, RHS: &Const{Value: 2}},
			"(d0 + d1) * 2",
		},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"const add", &Add{LHS: &Const{Value: 2}, RHS: &Const{Value: 3}}, "5"},
		{"add zero right", &Add{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 0}}, "d0"},
		{"add zero left", &Add{LHS: &Const{Value: 0}, RHS: &Dim{Pos: 0}}, "d0"},
		{"const mul", &Mul{LHS: &Const{Value: 6}, RHS: &Const{Value: 7}}, "42"},
		{"mul one", &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 1}}, "d0"},
		{"mul zero", &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 0}}, "0"},
		{"const to rhs", &Mul{LHS: &Const{Value: 128}, RHS: &Dim{Pos: 0}}, "d0 * 128"},
		{"floordiv by one", &FloorDiv{Num: &Dim{Pos: 0}, Den: 1}, "d0"},
		{"const floordiv", &FloorDiv{Num: &Const{Value: 129}, Den: 128}, "1"},
		{"negative const floordiv", &FloorDiv{Num: &Const{Value: -1}, Den: 128}, "-1"},
		{"mod by one", &Mod{Num: &Dim{Pos: 0}, Den: 1}, "0"},
		{"const mod", &Mod{Num: &Const{Value: 130}, Den: 128}, "2"},
		{"negative const mod", &Mod{Num: &Const{Value: -1}, Den: 128}, "127"},
		{
			"nested",
			&Add{
				LHS: &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 1}},
				RHS: &Mul{LHS: &Dim{Pos: 1}, RHS: &Const{Value: 0}},
			},
			"d0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.expr).String(); got != tt.expected {
				t.Errorf("Simplify() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEval(t *testing.T) {
	// (d0 * 128 + d1) floordiv 128
	div := &FloorDiv{
		Num: &Add{LHS: &Mul{LHS: &Dim{Pos: 0}, RHS: &Const{Value: 128}}, RHS: &Dim{Pos: 1}},
		Den: 128,
	}
	got, err := Eval(div, []int64{5, 100}, nil)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != 5 {
		t.Errorf("Eval = %d, want 5", got)
	}

	// mod 的结果总在 [0, Den) 内
	mod := &Mod{Num: &Add{LHS: &Dim{Pos: 0}, RHS: &Const{Value: -5}}, Den: 4}
	got, err = Eval(mod, []int64{1}, nil)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != 0 {
		t.Errorf("Eval = %d, want 0", got)
	}
	got, _ = Eval(mod, []int64{2}, nil)
	if got != 1 {
		t.Errorf("Eval = %d, want 1", got)
	}

	// 符号引用
	sym := &Add{LHS: &Sym{Pos: 0}, RHS: &Const{Value: 1}}
	got, err = Eval(sym, nil, []int64{41})
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if got != 42 {
		t.Errorf("Eval = %d, want 42", got)
	}
}

func TestEvalErrors(t *testing.T) {
	if _, err := Eval(&Dim{Pos: 2}, []int64{1, 2}, nil); err == nil {
		t.Error("expected error for out-of-range dim")
	}
	if _, err := Eval(&Sym{Pos: 0}, nil, nil); err == nil {
		t.Error("expected error for out-of-range sym")
	}
	if _, err := Eval(&FloorDiv{Num: &Const{Value: 1}, Den: 0}, nil, nil); err == nil {
		t.Error("expected error for non-positive denominator")
	}
}

func TestFloorDivInt(t *testing.T) {
	tests := []struct {
		a, d, div, mod int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{8, 4, 2, 0},
		{-8, 4, -2, 0},
		{0, 5, 0, 0},
		{-1, 128, -1, 127},
	}
	for _, tt := range tests {
		if got := floorDivInt(tt.a, tt.d); got != tt.div {
			t.Errorf("floorDivInt(%d, %d) = %d, want %d", tt.a, tt.d, got, tt.div)
		}
		if got := floorModInt(tt.a, tt.d); got != tt.mod {
			t.Errorf("floorModInt(%d, %d) = %d, want %d", tt.a, tt.d, got, tt.mod)
		}
	}
}
