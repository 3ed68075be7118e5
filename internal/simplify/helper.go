package simplify

import (
	"fmt"

	"github.com/tangzhangming/kunlun/internal/affine"
	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/rangeval"
)

// ============================================================================
// 单次调用的化简上下文
// ============================================================================

// helper 聚合单个访存操作的化简上下文
//
// 在模式入口处构造，把操作、索引映射、拆分后的维度/符号操作数
// 及其区间打包在一起，随调用传递，调用结束即丢弃。
type helper struct {
	access   ir.AccessOp
	analysis *rangeval.Analysis

	m    affine.Map
	dims []*ir.Value
	syms []*ir.Value

	dimRanges []rangeval.Range
	symRanges []rangeval.Range
}

// newHelper 构造化简上下文
//
// 操作数个数与映射元数不一致属于 IR 契约被破坏，返回错误。
func newHelper(access ir.AccessOp, analysis *rangeval.Analysis) (*helper, error) {
	m := access.IndexMap()
	operands := access.MapOperands()
	if len(operands) != m.NumDims+m.NumSyms {
		return nil, fmt.Errorf("access on %s: index map wants %d operands, op has %d",
			access.BufferName(), m.NumDims+m.NumSyms, len(operands))
	}

	h := &helper{
		access:   access,
		analysis: analysis,
		m:        m,
		dims:     operands[:m.NumDims],
		syms:     operands[m.NumDims:],
	}
	for _, v := range h.dims {
		h.dimRanges = append(h.dimRanges, analysis.RangeOf(v))
	}
	for _, v := range h.syms {
		h.symRanges = append(h.symRanges, analysis.RangeOf(v))
	}
	return h, nil
}

// nonNegativeOperands 校验所有维度/符号操作数都有非负的已知区间
//
// 小项删除的数值论证建立在所有操作数非负的前提上。这个前提
// 由外层分析建立，这里不重新推导，但在应用前用范围分析验证，
// 不满足时整个访存不参与化简。
func (h *helper) nonNegativeOperands() bool {
	for _, r := range h.dimRanges {
		if r.IsUnknown() || r.Lo < 0 {
			return false
		}
	}
	for _, r := range h.symRanges {
		if r.IsUnknown() || r.Lo < 0 {
			return false
		}
	}
	return true
}

// termBelowBound 物化一个求和项并判断它是否严格小于阈值
//
// 项被展开为访存前的具体操作，逐个纳入范围分析（这是整个
// 化简中唯一的副作用，之后由死操作清理回收）。项的区间未知、
// 可能为负或上界不小于阈值时返回 false。
func (h *helper) termBelowBound(b *ir.Builder, term affine.Expr, bound int64) bool {
	val, created := ir.ExpandAffineExpr(b, term, h.dims, h.syms)
	if val == nil {
		return false
	}

	var r rangeval.Range
	if len(created) == 0 {
		// 项就是某个维度/符号操作数本身
		r = h.analysis.RangeOf(val)
	} else {
		for _, op := range created {
			r = h.analysis.AddOperation(op)
		}
	}

	if r.IsUnknown() || r.Lo < 0 {
		return false
	}
	return r.SltAll(rangeval.Single(bound))
}

// replaceMap 用新的结果表达式整体替换索引映射
func (h *helper) replaceMap(results []affine.Expr) error {
	newMap, err := h.m.ReplaceResults(results)
	if err != nil {
		return err
	}
	return h.access.SetIndexMap(newMap)
}
