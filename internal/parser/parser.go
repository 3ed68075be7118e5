// Package parser 实现 .kl 文本 IR 的语法分析器
//
// 文法（EBNF）：
//
//	module  = { func } ;
//	func    = "func" IDENT "(" [ symdecl { "," symdecl } ] ")" block ;
//	symdecl = VARIABLE "in" "[" int "," int ")" ;
//	block   = "{" { stmt } "}" ;
//	stmt    = for | access ;
//	for     = "for" VARIABLE "=" int "to" int [ "step" int ] block ;
//	access  = ( "load" | "store" ) IDENT "[" map "]"
//	          "(" [ varlist ] ")" [ "[" varlist "]" ] ;
//	map     = "(" [ identlist ] ")" [ "[" identlist "]" ]
//	          "->" "(" expr { "," expr } ")" ;
//	expr    = mul { ( "+" | "-" ) mul } ;
//	mul     = unary { "*" unary | "floordiv" INT | "mod" INT } ;
//	unary   = "-" unary | INT | IDENT | "(" expr ")" ;
//
// 索引映射的元数和操作数个数在解析时校验，floordiv/mod 的
// 分母必须是正整数常量。
package parser

import (
	"fmt"

	"github.com/tangzhangming/kunlun/internal/affine"
	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/lexer"
	"github.com/tangzhangming/kunlun/internal/token"
)

// Parser 语法分析器
type Parser struct {
	tokens    []token.Token
	current   int
	errors    []Error
	filename  string
	panicMode bool // 错误恢复模式标志，用于避免级联报错

	fn       *ir.Func             // 当前函数
	symbols  map[string]*ir.Value // 当前函数的符号参数
	loopVars map[string]*ir.Value // 当前作用域内可见的循环变量
}

// Error 语法分析错误
type Error struct {
	Pos     token.Position
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// New 创建一个新的语法分析器
func New(source, filename string) *Parser {
	l := lexer.New(source, filename)
	tokens := l.ScanTokens()

	p := &Parser{
		tokens:   tokens,
		filename: filename,
	}
	// 词法错误直接并入语法错误列表
	for _, e := range l.Errors() {
		p.errors = append(p.errors, Error{Pos: e.Pos, Message: e.Message})
	}
	return p
}

// Parse 解析整个模块
func (p *Parser) Parse() *ir.Module {
	m := &ir.Module{}
	for !p.isAtEnd() {
		p.panicMode = false
		if !p.check(token.FUNC) {
			p.error(fmt.Sprintf("expected 'func', got %s", p.peek().Type))
			p.advance() // 消费错误 token，避免原地打转
			p.synchronize()
			continue
		}
		fn := p.parseFunc()
		if p.panicMode {
			p.synchronize()
			continue
		}
		if fn != nil {
			m.Funcs = append(m.Funcs, fn)
		}
	}
	return m
}

// Errors 返回所有语法错误
func (p *Parser) Errors() []Error {
	return p.errors
}

// HasErrors 检查是否有错误
func (p *Parser) HasErrors() bool {
	return len(p.errors) > 0
}

// ============================================================================
// 函数与语句
// ============================================================================

func (p *Parser) parseFunc() *ir.Func {
	p.consume(token.FUNC, "expected 'func'")
	name := p.consume(token.IDENT, "expected function name")

	fn := &ir.Func{Name: name.Literal}
	p.fn = fn
	p.symbols = make(map[string]*ir.Value)
	p.loopVars = make(map[string]*ir.Value)

	p.consume(token.LPAREN, "expected '(' after function name")
	if !p.check(token.RPAREN) {
		for {
			p.parseSymbolDecl()
			if p.panicMode || !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after symbol declarations")

	fn.Body = p.parseBlock()
	if p.panicMode {
		return nil
	}
	return fn
}

// parseSymbolDecl 解析符号参数声明：$M in [0, 512)
func (p *Parser) parseSymbolDecl() {
	name := p.consume(token.VARIABLE, "expected symbol variable")
	if p.panicMode {
		return
	}
	p.consume(token.IN, "expected 'in' after symbol name")
	p.consume(token.LBRACKET, "expected '[' before symbol range")
	lo := p.parseInt()
	p.consume(token.COMMA, "expected ',' in symbol range")
	hi := p.parseInt()
	// 半开区间以 ) 结尾
	p.consume(token.RPAREN, "expected ')' after symbol range")
	if p.panicMode {
		return
	}

	if _, exists := p.symbols[name.Literal]; exists {
		p.errorAt(name.Pos, fmt.Sprintf("duplicate symbol $%s", name.Literal))
		return
	}
	if hi <= lo {
		p.errorAt(name.Pos, fmt.Sprintf("empty symbol range [%d, %d)", lo, hi))
		return
	}
	v := p.fn.NewValue(name.Literal)
	p.symbols[name.Literal] = v
	p.fn.Symbols = append(p.fn.Symbols, ir.SymbolDecl{Value: v, Lo: lo, Hi: hi})
}

func (p *Parser) parseBlock() []ir.Op {
	p.consume(token.LBRACE, "expected '{'")
	var ops []ir.Op
	for !p.check(token.RBRACE) && !p.check(token.FUNC) && !p.isAtEnd() {
		op := p.parseStmt()
		if p.panicMode {
			p.synchronize()
			p.panicMode = false
			continue
		}
		if op != nil {
			ops = append(ops, op)
		}
	}
	p.consume(token.RBRACE, "expected '}'")
	return ops
}

func (p *Parser) parseStmt() ir.Op {
	switch p.peek().Type {
	case token.FOR:
		return p.parseFor()
	case token.LOAD, token.STORE:
		return p.parseAccess()
	default:
		p.error(fmt.Sprintf("expected statement, got %s", p.peek().Type))
		return nil
	}
}

// parseFor 解析循环：for $i = 0 to 64 step 1 { ... }
func (p *Parser) parseFor() ir.Op {
	p.consume(token.FOR, "expected 'for'")
	name := p.consume(token.VARIABLE, "expected loop variable")
	p.consume(token.ASSIGN, "expected '=' after loop variable")
	lower := p.parseInt()
	p.consume(token.TO, "expected 'to' after lower bound")
	upper := p.parseInt()
	step := int64(1)
	if p.match(token.STEP) {
		step = p.parseInt()
		if step <= 0 {
			p.errorAt(name.Pos, fmt.Sprintf("loop step must be positive, got %d", step))
		}
	}
	if p.panicMode {
		return nil
	}

	iv := p.fn.NewValue(name.Literal)
	prev, shadowed := p.loopVars[name.Literal]
	p.loopVars[name.Literal] = iv
	body := p.parseBlock()
	if shadowed {
		p.loopVars[name.Literal] = prev
	} else {
		delete(p.loopVars, name.Literal)
	}

	return &ir.ForOp{IV: iv, Lower: lower, Upper: upper, Step: step, Body: body}
}

// parseAccess 解析访存：load A[map]($i, $j)[$M]
func (p *Parser) parseAccess() ir.Op {
	keyword := p.advance() // load 或 store
	buffer := p.consume(token.IDENT, "expected buffer name")
	p.consume(token.LBRACKET, "expected '[' before index map")
	m := p.parseMap()
	p.consume(token.RBRACKET, "expected ']' after index map")
	if p.panicMode {
		return nil
	}

	p.consume(token.LPAREN, "expected '(' before dimension operands")
	dims := p.parseVarList(token.RPAREN)
	p.consume(token.RPAREN, "expected ')' after dimension operands")

	var syms []*ir.Value
	if p.check(token.LBRACKET) {
		p.advance()
		syms = p.parseVarList(token.RBRACKET)
		p.consume(token.RBRACKET, "expected ']' after symbol operands")
	}
	if p.panicMode {
		return nil
	}

	if len(dims) != m.NumDims {
		p.errorAt(buffer.Pos, fmt.Sprintf("index map expects %d dimension operands, got %d", m.NumDims, len(dims)))
		return nil
	}
	if len(syms) != m.NumSyms {
		p.errorAt(buffer.Pos, fmt.Sprintf("index map expects %d symbol operands, got %d", m.NumSyms, len(syms)))
		return nil
	}

	operands := append(append([]*ir.Value{}, dims...), syms...)
	if keyword.Type == token.LOAD {
		return &ir.LoadOp{Buffer: buffer.Literal, Map: m, Operands: operands}
	}
	return &ir.StoreOp{Buffer: buffer.Literal, Map: m, Operands: operands}
}

// parseVarList 解析变量操作数列表，变量必须是可见的循环变量或符号
func (p *Parser) parseVarList(end token.TokenType) []*ir.Value {
	var out []*ir.Value
	if p.check(end) {
		return out
	}
	for {
		name := p.consume(token.VARIABLE, "expected variable operand")
		if p.panicMode {
			return out
		}
		if v, ok := p.loopVars[name.Literal]; ok {
			out = append(out, v)
		} else if v, ok := p.symbols[name.Literal]; ok {
			out = append(out, v)
		} else {
			p.errorAt(name.Pos, fmt.Sprintf("undefined variable $%s", name.Literal))
			return out
		}
		if !p.match(token.COMMA) {
			return out
		}
	}
}

// ============================================================================
// 索引映射与仿射表达式
// ============================================================================

// mapContext 一个映射字面量内的维度/符号名到位置的绑定
type mapContext struct {
	dims map[string]int
	syms map[string]int
}

// parseMap 解析索引映射：(d0, d1)[s0] -> (expr, ...)
func (p *Parser) parseMap() affine.Map {
	ctx := &mapContext{dims: make(map[string]int), syms: make(map[string]int)}

	p.consume(token.LPAREN, "expected '(' at start of index map")
	p.parseNameList(ctx.dims, token.RPAREN)
	p.consume(token.RPAREN, "expected ')' after map dimensions")

	if p.check(token.LBRACKET) {
		p.advance()
		p.parseNameList(ctx.syms, token.RBRACKET)
		p.consume(token.RBRACKET, "expected ']' after map symbols")
	}

	p.consume(token.ARROW, "expected '->' in index map")
	p.consume(token.LPAREN, "expected '(' before map results")

	var results []affine.Expr
	if !p.check(token.RPAREN) {
		for {
			e := p.parseExpr(ctx)
			if p.panicMode {
				break
			}
			results = append(results, e)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after map results")

	return affine.NewMap(len(ctx.dims), len(ctx.syms), results)
}

// parseNameList 解析映射头中的名字列表，按出现顺序编号
func (p *Parser) parseNameList(names map[string]int, end token.TokenType) {
	if p.check(end) {
		return
	}
	for {
		name := p.consume(token.IDENT, "expected name in index map header")
		if p.panicMode {
			return
		}
		if _, exists := names[name.Literal]; exists {
			p.errorAt(name.Pos, fmt.Sprintf("duplicate name %s in index map", name.Literal))
			return
		}
		names[name.Literal] = len(names)
		if !p.match(token.COMMA) {
			return
		}
	}
}

// parseExpr 解析仿射表达式（+ 和 - 两个最低优先级）
//
// 减法脱糖为加上 -1 倍：a - b == a + b * -1。
func (p *Parser) parseExpr(ctx *mapContext) affine.Expr {
	left := p.parseMul(ctx)
	for {
		switch {
		case p.match(token.PLUS):
			right := p.parseMul(ctx)
			if p.panicMode {
				return left
			}
			left = &affine.Add{LHS: left, RHS: right}
		case p.match(token.MINUS):
			right := p.parseMul(ctx)
			if p.panicMode {
				return left
			}
			neg := affine.Simplify(&affine.Mul{LHS: right, RHS: &affine.Const{Value: -1}})
			left = &affine.Add{LHS: left, RHS: neg}
		default:
			return left
		}
	}
}

// parseMul 解析乘法、floordiv 和 mod（同级，左结合）
func (p *Parser) parseMul(ctx *mapContext) affine.Expr {
	left := p.parseUnary(ctx)
	for {
		switch {
		case p.match(token.STAR):
			right := p.parseUnary(ctx)
			if p.panicMode {
				return left
			}
			left = &affine.Mul{LHS: left, RHS: right}
		case p.match(token.FLOORDIV):
			den := p.parseDenominator()
			if p.panicMode {
				return left
			}
			left = &affine.FloorDiv{Num: left, Den: den}
		case p.match(token.MOD):
			den := p.parseDenominator()
			if p.panicMode {
				return left
			}
			left = &affine.Mod{Num: left, Den: den}
		default:
			return left
		}
	}
}

func (p *Parser) parseUnary(ctx *mapContext) affine.Expr {
	if p.match(token.MINUS) {
		inner := p.parseUnary(ctx)
		if p.panicMode {
			return inner
		}
		return affine.Simplify(&affine.Mul{LHS: inner, RHS: &affine.Const{Value: -1}})
	}
	return p.parsePrimary(ctx)
}

func (p *Parser) parsePrimary(ctx *mapContext) affine.Expr {
	switch {
	case p.check(token.INT):
		t := p.advance()
		return &affine.Const{Value: t.Value}
	case p.check(token.IDENT):
		t := p.advance()
		if pos, ok := ctx.dims[t.Literal]; ok {
			return &affine.Dim{Pos: pos}
		}
		if pos, ok := ctx.syms[t.Literal]; ok {
			return &affine.Sym{Pos: pos}
		}
		p.errorAt(t.Pos, fmt.Sprintf("unknown name %s in map expression", t.Literal))
		return &affine.Const{Value: 0}
	case p.match(token.LPAREN):
		e := p.parseExpr(ctx)
		p.consume(token.RPAREN, "expected ')' in map expression")
		return e
	default:
		p.error(fmt.Sprintf("expected expression, got %s", p.peek().Type))
		return &affine.Const{Value: 0}
	}
}

// parseDenominator 解析 floordiv/mod 的分母，必须是正整数常量
func (p *Parser) parseDenominator() int64 {
	t := p.consume(token.INT, "floordiv/mod denominator must be an integer constant")
	if p.panicMode {
		return 1
	}
	if t.Value <= 0 {
		p.errorAt(t.Pos, fmt.Sprintf("floordiv/mod denominator must be positive, got %d", t.Value))
		return 1
	}
	return t.Value
}

// parseInt 解析可带负号的整数字面量
func (p *Parser) parseInt() int64 {
	neg := p.match(token.MINUS)
	t := p.consume(token.INT, "expected integer")
	if p.panicMode {
		return 0
	}
	if neg {
		return -t.Value
	}
	return t.Value
}

// ============================================================================
// 辅助方法
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.current]
	if !p.isAtEnd() {
		p.current++
	}
	return t
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(t token.TokenType) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(message)
	return p.peek()
}

func (p *Parser) error(message string) {
	p.errorAt(p.peek().Pos, message)
}

func (p *Parser) errorAt(pos token.Position, message string) {
	if p.panicMode {
		return // 已在错误恢复中，抑制级联报错
	}
	p.panicMode = true
	p.errors = append(p.errors, Error{Pos: pos, Message: message})
}

// synchronize 跳到下一个可能的语句或函数边界
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		switch p.peek().Type {
		case token.FUNC, token.FOR, token.LOAD, token.STORE, token.RBRACE:
			return
		}
		p.advance()
	}
}
