// Package token 定义 .kl 文本 IR 的词法单元
package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	ILLEGAL TokenType = iota // 非法字符
	EOF                      // 文件结束
	COMMENT                  // 注释

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	IDENT    // 标识符（函数名、缓冲区名、映射中的 d0/s0）
	VARIABLE // 变量（$ 开头：循环变量、符号参数）
	INT      // 整数字面量

	// ----------------------------------------------------------
	// 运算符
	// ----------------------------------------------------------
	PLUS   // +
	MINUS  // -
	STAR   // *
	ASSIGN // =

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	COMMA    // ,
	ARROW    // ->

	// ----------------------------------------------------------
	// 关键字
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	FUNC        // func
	FOR         // for
	TO          // to
	STEP        // step
	IN          // in
	LOAD        // load
	STORE       // store
	FLOORDIV    // floordiv
	MOD         // mod
	keyword_end // 关键字结束标记
)

// tokenNames Token 类型的可读名称
var tokenNames = map[TokenType]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	COMMENT:  "COMMENT",
	IDENT:    "IDENT",
	VARIABLE: "VARIABLE",
	INT:      "INT",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	ASSIGN:   "=",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",
	COMMA:    ",",
	ARROW:    "->",
	FUNC:     "func",
	FOR:      "for",
	TO:       "to",
	STEP:     "step",
	IN:       "in",
	LOAD:     "load",
	STORE:    "store",
	FLOORDIV: "floordiv",
	MOD:      "mod",
}

// String 返回 Token 类型的可读名称
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords 关键字表
var keywords = map[string]TokenType{
	"func":     FUNC,
	"for":      FOR,
	"to":       TO,
	"step":     STEP,
	"in":       IN,
	"load":     LOAD,
	"store":    STORE,
	"floordiv": FLOORDIV,
	"mod":      MOD,
}

// LookupIdent 查表判断标识符是否为关键字
func LookupIdent(ident string) TokenType {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// IsKeyword 判断是否为关键字类型
func (t TokenType) IsKeyword() bool {
	return t > keyword_beg && t < keyword_end
}

// ============================================================================
// 位置与 Token
// ============================================================================

// Position 源代码中的位置
type Position struct {
	Filename string // 文件名
	Line     int    // 行号 (从1开始)
	Column   int    // 列号 (从1开始)
	Offset   int    // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "filename:line:column"
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token 一个词法单元
type Token struct {
	Type    TokenType // Token 类型
	Literal string    // 原始字面量
	Value   int64     // 解析后的整数值（仅 INT 使用）
	Pos     Position  // 位置信息
}

// String 返回 Token 的字符串表示（用于调试）
func (t Token) String() string {
	switch t.Type {
	case IDENT, VARIABLE, INT:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Literal, t.Pos)
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos)
	}
}
