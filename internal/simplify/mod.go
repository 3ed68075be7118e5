package simplify

import (
	"github.com/tangzhangming/kunlun/internal/affine"
	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/rangeval"
)

// ============================================================================
// mod 小项提取
// ============================================================================

// ModPattern 把 mod 分子中可证明过小的项移到取模外面
//
// 判定条件与 floordiv 相同：最小项恒小于 gcd(d, 其余系数)。
// 但 mod 不会丢弃信息，被移除的项必须以加法形式重新挂在
// 取模外侧：(sum + t) mod d == t + sum mod d，对满足条件的 t
// 精确成立。
type ModPattern struct{}

// Name 模式名
func (ModPattern) Name() string { return "small-term-mod" }

// MatchAndRewrite 对访存操作的每个结果表达式应用 mod 化简
func (ModPattern) MatchAndRewrite(b *ir.Builder, access ir.AccessOp, analysis *rangeval.Analysis) (bool, error) {
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
		results = append(results, rewriteSubExprs(e, affine.KindMod, func(expr affine.Expr) affine.Expr {
			mod, ok := expr.(*affine.Mod)
			if !ok {
				return expr
			}
			pruned, ok := h.pruneMod(b, mod)
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

// pruneMod 对单个 mod 子表达式做迭代小项提取
func (h *helper) pruneMod(b *ir.Builder, mod *affine.Mod) (affine.Expr, bool) {
	if mod.Den <= 0 || !affine.IsLinear(mod.Num) {
		return nil, false
	}
	reordered, terms, ok := affine.Reorder(mod.Num)
	if !ok {
		return nil, false
	}
	ladder := affine.SuffixGCDs(mod.Den, terms)

	changed := false
	curMod := affine.Expr(mod)
	sum := reordered
	extracted := affine.Expr(&affine.Const{Value: 0})
	for len(ladder) >= 2 {
		smallest := ladder[len(ladder)-1].Term
		bound := ladder[len(ladder)-2].GCD
		if !h.termBelowBound(b, smallest, bound) {
			break
		}
		add, ok := sum.(*affine.Add)
		if !ok {
			break
		}
		sum = add.LHS
		// 被移除的项挂到取模外面，保持精确等价
		extracted = affine.Simplify(&affine.Add{LHS: extracted, RHS: add.RHS})
		curMod = affine.Simplify(&affine.Mod{Num: sum, Den: mod.Den})
		ladder = ladder[:len(ladder)-1]
		changed = true
	}

	if !changed {
		return nil, false
	}
	return affine.Simplify(&affine.Add{LHS: extracted, RHS: curMod}), true
}
