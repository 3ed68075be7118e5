package simplify

import (
	"github.com/tangzhangming/kunlun/internal/affine"
	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/rangeval"
)

// ============================================================================
// floordiv 小项删除
// ============================================================================

// FloorDivPattern 删除 floordiv 分子中可证明过小的求和项
//
// 对 (c1*x1 + ... + cn*xn) floordiv d，把各项按系数降序重排，
// 若最小项的取值恒小于 gcd(d, c1, ..., c(n-1))，则它小于这次
// 除法能分辨的最小单位，对商没有任何贡献，可以直接删掉。
// 删除后对剩余项重复，直到判定失败或只剩一项。
type FloorDivPattern struct{}

// Name 模式名
func (FloorDivPattern) Name() string { return "small-term-floordiv" }

// MatchAndRewrite 对访存操作的每个结果表达式应用 floordiv 化简
//
// 任何一个结果里删掉了至少一项时整体替换索引映射并返回 true，
// 否则不触碰操作并返回 false。
func (FloorDivPattern) MatchAndRewrite(b *ir.Builder, access ir.AccessOp, analysis *rangeval.Analysis) (bool, error) {
	h, err := newHelper(access, analysis)
	if err != nil {
		return false, err
	}
	if !h.nonNegativeOperands() {
		return false, nil
	}

	changed := false
	results := make([]affine.Expr, 0, len(h.m.Results))
	for _, e := range h.m.Results {
		results = append(results, rewriteSubExprs(e, affine.KindFloorDiv, func(expr affine.Expr) affine.Expr {
			div, ok := expr.(*affine.FloorDiv)
			if !ok {
				return expr
			}
			pruned, ok := h.pruneFloorDiv(b, div)
			if !ok {
				return expr
			}
			changed = true
			return pruned
		}))
	}

	if !changed {
		return false, nil
	}
	if err := h.replaceMap(results); err != nil {
		return false, err
	}
	return true, nil
}

// pruneFloorDiv 对单个 floordiv 子表达式做迭代小项删除
//
// 前置条件不满足（非线性分子、非正分母）或一项都删不掉时
// 返回 (nil, false)，调用方保持原表达式不变。
func (h *helper) pruneFloorDiv(b *ir.Builder, div *affine.FloorDiv) (affine.Expr, bool) {
	if div.Den <= 0 || !affine.IsLinear(div.Num) {
		return nil, false
	}
	reordered, terms, ok := affine.Reorder(div.Num)
	if !ok {
		return nil, false
	}
	ladder := affine.SuffixGCDs(div.Den, terms)

	changed := false
	cur := affine.Expr(div)
	sum := reordered
	for len(ladder) >= 2 {
		smallest := ladder[len(ladder)-1].Term
		bound := ladder[len(ladder)-2].GCD
		if !h.termBelowBound(b, smallest, bound) {
			// 一次判定失败就停止：保守但可靠
			break
		}
		add, ok := sum.(*affine.Add)
		if !ok {
			// 累加树形状被破坏，放弃而不是产生可疑的改写
			break
		}
		sum = add.LHS
		cur = affine.Simplify(&affine.FloorDiv{Num: sum, Den: div.Den})
		ladder = ladder[:len(ladder)-1]
		changed = true
	}

	if !changed {
		return nil, false
	}
	return cur, true
}
