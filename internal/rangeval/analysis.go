package rangeval

import (
	"github.com/tangzhangming/kunlun/internal/ir"
)

// ============================================================================
// 函数级范围分析
// ============================================================================

// Analysis 为函数内的每个 SSA 值记录一个保守区间
//
// 构造时遍历整个函数：符号参数取声明范围，循环变量取
// [下界, 最后一次迭代值]，常量和二元运算按区间运算推导。
// 改写过程中新物化的操作通过 AddOperation 增量纳入。
type Analysis struct {
	ranges map[*ir.Value]Range
}

// NewAnalysis 对函数做一遍完整的范围分析
func NewAnalysis(f *ir.Func) *Analysis {
	a := &Analysis{ranges: make(map[*ir.Value]Range)}
	for _, s := range f.Symbols {
		// 声明为半开区间 [Lo, Hi)
		if s.Hi > s.Lo {
			a.ranges[s.Value] = New(s.Lo, s.Hi-1)
		} else {
			a.ranges[s.Value] = Unknown()
		}
	}
	a.walk(f.Body)
	return a
}

func (a *Analysis) walk(ops []ir.Op) {
	for _, op := range ops {
		if forOp, ok := op.(*ir.ForOp); ok {
			a.ranges[forOp.IV] = ivRange(forOp)
			a.walk(forOp.Body)
			continue
		}
		a.AddOperation(op)
	}
}

// ivRange 循环变量的取值区间
func ivRange(o *ir.ForOp) Range {
	if o.Step <= 0 {
		return Unknown()
	}
	if o.Upper <= o.Lower {
		// 零次循环，循环变量不会产生取值；单点区间保持保守
		return Single(o.Lower)
	}
	last := o.Lower + (o.Upper-1-o.Lower)/o.Step*o.Step
	return New(o.Lower, last)
}

// HasRange 是否已有该值的区间
func (a *Analysis) HasRange(v *ir.Value) bool {
	_, ok := a.ranges[v]
	return ok
}

// RangeOf 查询值的区间，未分析过的值返回未知
func (a *Analysis) RangeOf(v *ir.Value) Range {
	if r, ok := a.ranges[v]; ok {
		return r
	}
	return Unknown()
}

// AddOperation 把一个操作纳入分析并返回其结果区间
//
// 这是范围引擎的扩展入口：化简过程中物化的常量和运算
// 在插入 IR 后立即经由这里获得区间。没有结果值的操作
// 返回未知。
func (a *Analysis) AddOperation(op ir.Op) Range {
	switch o := op.(type) {
	case *ir.ConstOp:
		r := Single(o.Val)
		a.ranges[o.Result] = r
		return r
	case *ir.BinOp:
		lhs := a.RangeOf(o.LHS)
		rhs := a.RangeOf(o.RHS)
		var r Range
		switch o.Kind {
		case ir.BinAdd:
			r = lhs.Add(rhs)
		case ir.BinMul:
			r = lhs.Mul(rhs)
		case ir.BinFloorDiv:
			r = lhs.FloorDiv(rhs)
		case ir.BinMod:
			r = lhs.Mod(rhs)
		default:
			r = Unknown()
		}
		a.ranges[o.Result] = r
		return r
	}
	return Unknown()
}
