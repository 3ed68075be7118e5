package lexer

import (
	"testing"

	"github.com/tangzhangming/kunlun/internal/token"
)

// tok 测试里用的简化 token 形式
type tok struct {
	typ     token.TokenType
	literal string
}

func scan(t *testing.T, source string) []token.Token {
	t.Helper()
	l := New(source, "test.kl")
	tokens := l.ScanTokens()
	if l.HasErrors() {
		t.Fatalf("unexpected lexer errors: %v", l.Errors())
	}
	return tokens
}

func checkTokens(t *testing.T, got []token.Token, want []tok) {
	t.Helper()
	if len(got) != len(want)+1 {
		t.Fatalf("got %d tokens, want %d (+EOF)", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Type != w.typ {
			t.Errorf("token %d: type = %v, want %v", i, got[i].Type, w.typ)
		}
		if w.literal != "" && got[i].Literal != w.literal {
			t.Errorf("token %d: literal = %q, want %q", i, got[i].Literal, w.literal)
		}
	}
	if got[len(got)-1].Type != token.EOF {
		t.Errorf("last token is %v, want EOF", got[len(got)-1].Type)
	}
}

func TestScanDelimiters(t *testing.T) {
	tokens := scan(t, "( ) [ ] { } , -> + - * =")
	checkTokens(t, tokens, []tok{
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.COMMA, ","},
		{token.ARROW, "->"},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.ASSIGN, "="},
	})
}

func TestScanKeywordsAndIdents(t *testing.T) {
	tokens := scan(t, "func for to step in load store floordiv mod A d0 s0")
	checkTokens(t, tokens, []tok{
		{token.FUNC, "func"},
		{token.FOR, "for"},
		{token.TO, "to"},
		{token.STEP, "step"},
		{token.IN, "in"},
		{token.LOAD, "load"},
		{token.STORE, "store"},
		{token.FLOORDIV, "floordiv"},
		{token.MOD, "mod"},
		{token.IDENT, "A"},
		{token.IDENT, "d0"},
		{token.IDENT, "s0"},
	})
}

func TestScanVariables(t *testing.T) {
	tokens := scan(t, "$i $outer $M")
	// 变量字面量不含 $ 前缀
	checkTokens(t, tokens, []tok{
		{token.VARIABLE, "i"},
		{token.VARIABLE, "outer"},
		{token.VARIABLE, "M"},
	})
}

func TestScanNumbers(t *testing.T) {
	tokens := scan(t, "0 128 1000")
	checkTokens(t, tokens, []tok{
		{token.INT, "0"},
		{token.INT, "128"},
		{token.INT, "1000"},
	})
	wantValues := []int64{0, 128, 1000}
	for i, w := range wantValues {
		if tokens[i].Value != w {
			t.Errorf("token %d: value = %d, want %d", i, tokens[i].Value, w)
		}
	}
}

func TestScanComments(t *testing.T) {
	tokens := scan(t, "load // trailing\n/* block\ncomment */ store")
	checkTokens(t, tokens, []tok{
		{token.LOAD, "load"},
		{token.STORE, "store"},
	})
}

func TestScanPositions(t *testing.T) {
	tokens := scan(t, "func f\n  for")
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Errorf("func at %d:%d, want 1:1", tokens[0].Pos.Line, tokens[0].Pos.Column)
	}
	if tokens[1].Pos.Line != 1 || tokens[1].Pos.Column != 6 {
		t.Errorf("f at %d:%d, want 1:6", tokens[1].Pos.Line, tokens[1].Pos.Column)
	}
	if tokens[2].Pos.Line != 2 || tokens[2].Pos.Column != 3 {
		t.Errorf("for at %d:%d, want 2:3", tokens[2].Pos.Line, tokens[2].Pos.Column)
	}
}

func TestScanAccessLine(t *testing.T) {
	tokens := scan(t, "load A[(d0, d1)[s0] -> (d0 floordiv 4)]($i, $j)[$M]")
	checkTokens(t, tokens, []tok{
		{token.LOAD, "load"},
		{token.IDENT, "A"},
		{token.LBRACKET, "["},
		{token.LPAREN, "("},
		{token.IDENT, "d0"},
		{token.COMMA, ","},
		{token.IDENT, "d1"},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.IDENT, "s0"},
		{token.RBRACKET, "]"},
		{token.ARROW, "->"},
		{token.LPAREN, "("},
		{token.IDENT, "d0"},
		{token.FLOORDIV, "floordiv"},
		{token.INT, "4"},
		{token.RPAREN, ")"},
		{token.RBRACKET, "]"},
		{token.LPAREN, "("},
		{token.VARIABLE, "i"},
		{token.COMMA, ","},
		{token.VARIABLE, "j"},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.VARIABLE, "M"},
		{token.RBRACKET, "]"},
	})
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"illegal character", "func @"},
		{"bare dollar", "$ i"},
		{"unterminated block comment", "/* never closed"},
		{"huge integer", "99999999999999999999"},
		{"stray slash", "a / b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.source, "test.kl")
			l.ScanTokens()
			if !l.HasErrors() {
				t.Errorf("expected lexer error for %q", tt.source)
			}
		})
	}
}
