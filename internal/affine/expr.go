// Package affine 实现仿射索引表达式模型
//
// 仿射表达式由整数常量、维度/符号变量、加法、常量乘法以及
// 常量分母的向下取整除法（floordiv）和取模（mod）构成。
// 表达式树是不可变的，所有改写都会构造新的节点。
package affine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// 表达式节点定义
// ============================================================================

// Kind 表达式节点类型
type Kind int

const (
	KindConst    Kind = iota // 整数常量
	KindDim                  // 维度变量（按位置引用）
	KindSym                  // 符号变量（按位置引用）
	KindAdd                  // 加法
	KindMul                  // 乘法
	KindFloorDiv             // 向下取整除法（分母为正常量）
	KindMod                  // 取模（分母为正常量）
)

// Expr 仿射表达式接口
//
// 节点集合是封闭的：Const、Dim、Sym、Add、Mul、FloorDiv、Mod。
// 调用方通过 Kind() 或类型断言做穷举分派。
type Expr interface {
	Kind() Kind
	String() string
	exprNode()
}

// Const 整数常量
type Const struct {
	Value int64
}

// Dim 维度变量，按在索引映射中的位置引用（d0, d1, ...）
type Dim struct {
	Pos int
}

// Sym 符号变量，按在索引映射中的位置引用（s0, s1, ...）
type Sym struct {
	Pos int
}

// Add 加法节点
type Add struct {
	LHS Expr
	RHS Expr
}

// Mul 乘法节点
//
// 线性表达式要求至少一边是常量；语法上不做强制，
// 由 IsLinear 在使用前判定。
type Mul struct {
	LHS Expr
	RHS Expr
}

// FloorDiv 向下取整除法，分母为正常量
type FloorDiv struct {
	Num Expr  // 分子
	Den int64 // 分母，要求 > 0
}

// Mod 取模，分母为正常量，结果在 [0, Den) 内
type Mod struct {
	Num Expr  // 分子
	Den int64 // 分母，要求 > 0
}

func (*Const) Kind() Kind    { return KindConst }
func (*Dim) Kind() Kind      { return KindDim }
func (*Sym) Kind() Kind      { return KindSym }
func (*Add) Kind() Kind      { return KindAdd }
func (*Mul) Kind() Kind      { return KindMul }
func (*FloorDiv) Kind() Kind { return KindFloorDiv }
func (*Mod) Kind() Kind      { return KindMod }

func (*Const) exprNode()    {}
func (*Dim) exprNode()      {}
func (*Sym) exprNode()      {}
func (*Add) exprNode()      {}
func (*Mul) exprNode()      {}
func (*FloorDiv) exprNode() {}
func (*Mod) exprNode()      {}

// IsBinary 判断是否为二元节点（Add、Mul、FloorDiv、Mod）
func IsBinary(e Expr) bool {
	switch e.Kind() {
	case KindAdd, KindMul, KindFloorDiv, KindMod:
		return true
	}
	return false
}

// ============================================================================
// 字符串表示
// ============================================================================

func (e *Const) String() string { return strconv.FormatInt(e.Value, 10) }
func (e *Dim) String() string   { return fmt.Sprintf("d%d", e.Pos) }
func (e *Sym) String() string   { return fmt.Sprintf("s%d", e.Pos) }

func (e *Add) String() string {
	return e.LHS.String() + " + " + e.RHS.String()
}

func (e *Mul) String() string {
	return parenthesize(e.LHS) + " * " + parenthesize(e.RHS)
}

func (e *FloorDiv) String() string {
	return parenthesize(e.Num) + " floordiv " + strconv.FormatInt(e.Den, 10)
}

func (e *Mod) String() string {
	return parenthesize(e.Num) + " mod " + strconv.FormatInt(e.Den, 10)
}

// parenthesize 对非原子子表达式加括号，保证输出可被解析器还原
func parenthesize(e Expr) string {
	if IsBinary(e) {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// ============================================================================
// 常量折叠
// ============================================================================

// Simplify 自底向上做一遍常量折叠与恒等式化简
//
// 规则：
//   - 常量与常量的运算直接求值
//   - x + 0 == x；x * 1 == x；x * 0 == 0
//   - 乘法中的常量因子规范化到右侧
//   - x floordiv 1 == x；x mod 1 == 0
//
// 不做重结合、同类项合并等更深的规范化。
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case *Add:
		lhs := Simplify(n.LHS)
		rhs := Simplify(n.RHS)
		if lc, ok := lhs.(*Const); ok {
			if rc, ok := rhs.(*Const); ok {
				return &Const{Value: lc.Value + rc.Value}
			}
			if lc.Value == 0 {
				return rhs
			}
		}
		if rc, ok := rhs.(*Const); ok && rc.Value == 0 {
			return lhs
		}
		return &Add{LHS: lhs, RHS: rhs}

	case *Mul:
		lhs := Simplify(n.LHS)
		rhs := Simplify(n.RHS)
		// 常量因子规范化到右侧
		if _, ok := lhs.(*Const); ok {
			if _, ok := rhs.(*Const); !ok {
				lhs, rhs = rhs, lhs
			}
		}
		if rc, ok := rhs.(*Const); ok {
			if lc, ok := lhs.(*Const); ok {
				return &Const{Value: lc.Value * rc.Value}
			}
			switch rc.Value {
			case 0:
				return &Const{Value: 0}
			case 1:
				return lhs
			}
		}
		return &Mul{LHS: lhs, RHS: rhs}

	case *FloorDiv:
		num := Simplify(n.Num)
		if n.Den == 1 {
			return num
		}
		if c, ok := num.(*Const); ok && n.Den > 0 {
			return &Const{Value: floorDivInt(c.Value, n.Den)}
		}
		return &FloorDiv{Num: num, Den: n.Den}

	case *Mod:
		num := Simplify(n.Num)
		if n.Den == 1 {
			return &Const{Value: 0}
		}
		if c, ok := num.(*Const); ok && n.Den > 0 {
			return &Const{Value: floorModInt(c.Value, n.Den)}
		}
		return &Mod{Num: num, Den: n.Den}
	}
	return e
}

// ============================================================================
// 求值
// ============================================================================

// Eval 在给定的维度/符号赋值下对表达式求值
//
// floordiv 向负无穷取整，mod 的结果落在 [0, Den) 内，
// 与表达式模型的语义一致。越界的变量引用或非正分母返回错误。
func Eval(e Expr, dims, syms []int64) (int64, error) {
	switch n := e.(type) {
	case *Const:
		return n.Value, nil
	case *Dim:
		if n.Pos < 0 || n.Pos >= len(dims) {
			return 0, fmt.Errorf("dim position %d out of range (have %d dims)", n.Pos, len(dims))
		}
		return dims[n.Pos], nil
	case *Sym:
		if n.Pos < 0 || n.Pos >= len(syms) {
			return 0, fmt.Errorf("sym position %d out of range (have %d syms)", n.Pos, len(syms))
		}
		return syms[n.Pos], nil
	case *Add:
		l, err := Eval(n.LHS, dims, syms)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.RHS, dims, syms)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case *Mul:
		l, err := Eval(n.LHS, dims, syms)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.RHS, dims, syms)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case *FloorDiv:
		if n.Den <= 0 {
			return 0, fmt.Errorf("floordiv denominator must be positive, got %d", n.Den)
		}
		num, err := Eval(n.Num, dims, syms)
		if err != nil {
			return 0, err
		}
		return floorDivInt(num, n.Den), nil
	case *Mod:
		if n.Den <= 0 {
			return 0, fmt.Errorf("mod denominator must be positive, got %d", n.Den)
		}
		num, err := Eval(n.Num, dims, syms)
		if err != nil {
			return 0, err
		}
		return floorModInt(num, n.Den), nil
	}
	return 0, fmt.Errorf("unknown expression node %T", e)
}

// floorDivInt 向负无穷取整的整数除法，要求 d > 0
func floorDivInt(a, d int64) int64 {
	q := a / d
	if a%d != 0 && a < 0 {
		q--
	}
	return q
}

// floorModInt 结果落在 [0, d) 的取模，要求 d > 0
func floorModInt(a, d int64) int64 {
	m := a % d
	if m < 0 {
		m += d
	}
	return m
}
