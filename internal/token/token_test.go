package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected TokenType
	}{
		{"func", FUNC},
		{"for", FOR},
		{"to", TO},
		{"step", STEP},
		{"in", IN},
		{"load", LOAD},
		{"store", STORE},
		{"floordiv", FLOORDIV},
		{"mod", MOD},
		{"foo", IDENT},
		{"Func", IDENT},
		{"d0", IDENT},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.expected)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []TokenType{FUNC, FOR, TO, STEP, IN, LOAD, STORE, FLOORDIV, MOD} {
		if !kw.IsKeyword() {
			t.Errorf("%v should be a keyword", kw)
		}
	}
	for _, tok := range []TokenType{IDENT, INT, PLUS, EOF, ILLEGAL, LBRACE} {
		if tok.IsKeyword() {
			t.Errorf("%v should not be a keyword", tok)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "test.kl", Line: 3, Column: 7}
	if got := p.String(); got != "test.kl:3:7" {
		t.Errorf("Position.String() = %q", got)
	}
	p = Position{Line: 1, Column: 1}
	if got := p.String(); got != "1:1" {
		t.Errorf("Position.String() = %q", got)
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		typ      TokenType
		expected string
	}{
		{PLUS, "+"},
		{ARROW, "->"},
		{FLOORDIV, "floordiv"},
		{EOF, "EOF"},
		{VARIABLE, "VARIABLE"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
