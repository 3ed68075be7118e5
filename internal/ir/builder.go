package ir

import "github.com/tangzhangming/kunlun/internal/affine"

// ============================================================================
// 构建器
// ============================================================================

// Builder 在操作列表的指定位置插入新操作
//
// 插入点随插入前移，连续 Insert 的操作保持书写顺序。
// 访存遍历（WalkAccesses）为每个访存操作构造一个插入点位于
// 该操作之前的 Builder，物化的项表达式因此出现在访存之前。
type Builder struct {
	fn   *Func
	list *[]Op
	idx  int
}

// NewBuilder 创建构建器，插入点为 list 的第 idx 个位置
func NewBuilder(fn *Func, list *[]Op, idx int) *Builder {
	return &Builder{fn: fn, list: list, idx: idx}
}

// Func 返回构建器所属的函数
func (b *Builder) Func() *Func { return b.fn }

// InsertIndex 返回当前插入点位置
func (b *Builder) InsertIndex() int { return b.idx }

// Insert 在插入点插入一个操作
func (b *Builder) Insert(op Op) {
	s := *b.list
	s = append(s, nil)
	copy(s[b.idx+1:], s[b.idx:])
	s[b.idx] = op
	*b.list = s
	b.idx++
}

// NewConst 插入常量定义并返回结果值
func (b *Builder) NewConst(v int64) *Value {
	result := b.fn.NewValue("")
	b.Insert(&ConstOp{Result: result, Val: v})
	return result
}

// NewBinOp 插入二元运算并返回结果值
func (b *Builder) NewBinOp(kind BinKind, lhs, rhs *Value) *Value {
	result := b.fn.NewValue("")
	b.Insert(&BinOp{Kind: kind, Result: result, LHS: lhs, RHS: rhs})
	return result
}

// ============================================================================
// 表达式物化
// ============================================================================

// ExpandAffineExpr 把仿射表达式物化为插入点处的具体 IR 操作
//
// 维度/符号引用直接解析为对应的操作数值，不产生新操作；
// 其余节点递归展开为 ConstOp/BinOp 序列。返回表达式的结果值
// 以及新插入的操作列表（按插入顺序），供范围分析逐个纳入。
func ExpandAffineExpr(b *Builder, e affine.Expr, dims, syms []*Value) (*Value, []Op) {
	start := b.idx
	v := expand(b, e, dims, syms)
	return v, (*b.list)[start:b.idx]
}

func expand(b *Builder, e affine.Expr, dims, syms []*Value) *Value {
	switch n := e.(type) {
	case *affine.Const:
		return b.NewConst(n.Value)
	case *affine.Dim:
		return dims[n.Pos]
	case *affine.Sym:
		return syms[n.Pos]
	case *affine.Add:
		lhs := expand(b, n.LHS, dims, syms)
		rhs := expand(b, n.RHS, dims, syms)
		return b.NewBinOp(BinAdd, lhs, rhs)
	case *affine.Mul:
		lhs := expand(b, n.LHS, dims, syms)
		rhs := expand(b, n.RHS, dims, syms)
		return b.NewBinOp(BinMul, lhs, rhs)
	case *affine.FloorDiv:
		num := expand(b, n.Num, dims, syms)
		den := b.NewConst(n.Den)
		return b.NewBinOp(BinFloorDiv, num, den)
	case *affine.Mod:
		num := expand(b, n.Num, dims, syms)
		den := b.NewConst(n.Den)
		return b.NewBinOp(BinMod, num, den)
	}
	// 封闭语法，不会到达
	return nil
}
