// Package lexer 实现 .kl 文本 IR 的词法分析器
package lexer

import (
	"fmt"
	"strconv"

	"github.com/tangzhangming/kunlun/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source   string        // 源代码字符串
	filename string        // 源文件名（用于错误报告）
	tokens   []token.Token // 已扫描的 Token 列表

	start     int // 当前 Token 的起始位置（字节偏移）
	current   int // 当前扫描位置（字节偏移）
	line      int // 当前行号（从1开始）
	lineStart int // 当前行的起始偏移（用于计算列号）

	errors []Error // 词法错误列表
}

// Error 表示词法分析错误
type Error struct {
	Pos     token.Position // 错误位置
	Message string         // 错误信息
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// New 创建一个新的词法分析器
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
		tokens:   make([]token.Token, 0, 64),
		line:     1,
	}
}

// ============================================================================
// 公共方法
// ============================================================================

// ScanTokens 扫描所有 tokens
//
// 最后一个 Token 总是 EOF，表示文件结束。
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, token.Token{
		Type: token.EOF,
		Pos:  l.currentPos(),
	})
	return l.tokens
}

// Errors 返回所有词法错误
func (l *Lexer) Errors() []Error {
	return l.errors
}

// HasErrors 检查是否有错误
func (l *Lexer) HasErrors() bool {
	return len(l.errors) > 0
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

// scanToken 扫描单个 token
func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {

	// ----------------------------------------------------------
	// 空白字符
	// ----------------------------------------------------------
	case ' ', '\t', '\r':
		// 跳过

	case '\n':
		l.line++
		l.lineStart = l.current

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case ',':
		l.addToken(token.COMMA)

	// ----------------------------------------------------------
	// 运算符
	// ----------------------------------------------------------
	case '+':
		l.addToken(token.PLUS)
	case '*':
		l.addToken(token.STAR)
	case '=':
		l.addToken(token.ASSIGN)

	case '-':
		// - 或 ->
		if l.match('>') {
			l.addToken(token.ARROW)
		} else {
			l.addToken(token.MINUS)
		}

	case '/':
		// // 行注释 或 /* 块注释
		if l.match('/') {
			l.lineComment()
		} else if l.match('*') {
			l.blockComment()
		} else {
			l.error(fmt.Sprintf("unexpected character %q", ch))
		}

	// ----------------------------------------------------------
	// 变量（$ 开头）
	// ----------------------------------------------------------
	case '$':
		l.variable()

	default:
		if isDigit(ch) {
			l.number()
		} else if isAlpha(ch) {
			l.identifier()
		} else {
			l.error(fmt.Sprintf("unexpected character %q", ch))
		}
	}
}

// ============================================================================
// 复合 token 扫描
// ============================================================================

// number 扫描整数字面量
func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.advance()
	}
	literal := l.source[l.start:l.current]
	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		l.error(fmt.Sprintf("integer literal %s out of range", literal))
		return
	}
	l.tokens = append(l.tokens, token.Token{
		Type:    token.INT,
		Literal: literal,
		Value:   value,
		Pos:     l.startPos(),
	})
}

// identifier 扫描标识符或关键字
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	literal := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{
		Type:    token.LookupIdent(literal),
		Literal: literal,
		Pos:     l.startPos(),
	})
}

// variable 扫描 $ 开头的变量名
func (l *Lexer) variable() {
	if !isAlpha(l.peek()) {
		l.error("expected variable name after '$'")
		return
	}
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	// 字面量不含 $ 前缀
	l.tokens = append(l.tokens, token.Token{
		Type:    token.VARIABLE,
		Literal: l.source[l.start+1 : l.current],
		Pos:     l.startPos(),
	})
}

// lineComment 跳过行注释
func (l *Lexer) lineComment() {
	for l.peek() != '\n' && !l.isAtEnd() {
		l.advance()
	}
}

// blockComment 跳过块注释
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.lineStart = l.current + 1
		}
		l.advance()
	}
	l.error("unterminated block comment")
}

// ============================================================================
// 辅助方法
// ============================================================================

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	ch := l.source[l.current]
	l.current++
	return ch
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// match 当前字符等于 expected 时消费并返回 true
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) addToken(t token.TokenType) {
	l.tokens = append(l.tokens, token.Token{
		Type:    t,
		Literal: l.source[l.start:l.current],
		Pos:     l.startPos(),
	})
}

// startPos 当前 token 起始位置
func (l *Lexer) startPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.start - l.lineStart + 1,
		Offset:   l.start,
	}
}

// currentPos 当前扫描位置
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.current - l.lineStart + 1,
		Offset:   l.current,
	}
}

func (l *Lexer) error(message string) {
	l.errors = append(l.errors, Error{Pos: l.startPos(), Message: message})
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
