package simplify

import "github.com/tangzhangming/kunlun/internal/affine"

// rewriteSubExprs 后序遍历表达式树，对指定类型的二元子表达式应用改写
//
// 每个二元节点先递归处理并折叠两侧，再重建；重建结果经折叠后
// 仍是目标类型时交给 fn 改写。非二元节点原样返回。
func rewriteSubExprs(e affine.Expr, kind affine.Kind, fn func(affine.Expr) affine.Expr) affine.Expr {
	var rebuilt affine.Expr
	switch n := e.(type) {
	case *affine.Add:
		rebuilt = &affine.Add{
			LHS: rewriteSubExprs(n.LHS, kind, fn),
			RHS: rewriteSubExprs(n.RHS, kind, fn),
		}
	case *affine.Mul:
		rebuilt = &affine.Mul{
			LHS: rewriteSubExprs(n.LHS, kind, fn),
			RHS: rewriteSubExprs(n.RHS, kind, fn),
		}
	case *affine.FloorDiv:
		rebuilt = &affine.FloorDiv{
			Num: rewriteSubExprs(n.Num, kind, fn),
			Den: n.Den,
		}
	case *affine.Mod:
		rebuilt = &affine.Mod{
			Num: rewriteSubExprs(n.Num, kind, fn),
			Den: n.Den,
		}
	default:
		return e
	}

	rebuilt = affine.Simplify(rebuilt)
	if rebuilt.Kind() == kind {
		return fn(rebuilt)
	}
	return rebuilt
}
