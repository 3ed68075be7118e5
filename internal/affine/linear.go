package affine

import "sort"

// ============================================================================
// 线性判定与项提取
// ============================================================================

// IsConstantMul 判断表达式是否为「常量 × 变量/常量」形式的乘法
//
// 要求两侧都是原子节点（Const、Dim、Sym），且至少一侧是常量。
// 两个非常量相乘属于非线性表达式，不在本优化的处理范围内。
func IsConstantMul(e Expr) bool {
	mul, ok := e.(*Mul)
	if !ok {
		return false
	}
	if IsBinary(mul.LHS) || IsBinary(mul.RHS) {
		return false
	}
	_, lc := mul.LHS.(*Const)
	_, rc := mul.RHS.(*Const)
	return lc || rc
}

// IsLinear 判断表达式是否为线性组合
//
// 即形如 a0*x0 + a1*x1 + ... + an*xn，其中 a 为常量，
// x 为维度或符号变量。Const、Dim、Sym 本身等价于 1*x + 0，
// 也视为线性。嵌套的 floordiv/mod 或变量相乘返回 false。
func IsLinear(e Expr) bool {
	if !IsBinary(e) {
		return true
	}
	if IsConstantMul(e) {
		return true
	}
	if add, ok := e.(*Add); ok {
		return IsLinear(add.LHS) && IsLinear(add.RHS)
	}
	return false
}

// Terms 将线性表达式展平为求和项列表
//
// 返回的列表满足：按顺序对所有项做左折叠加法可以重建原表达式。
// 表达式不是线性时返回 (nil, false)。
func Terms(e Expr) ([]Expr, bool) {
	if !IsLinear(e) {
		return nil, false
	}
	var out []Expr
	if !collectTerms(e, &out) {
		return nil, false
	}
	return out, true
}

func collectTerms(e Expr, out *[]Expr) bool {
	if IsConstantMul(e) || !IsBinary(e) {
		*out = append(*out, e)
		return true
	}
	// 线性且非常量乘法的二元节点只能是加法
	add, ok := e.(*Add)
	if !ok {
		return false
	}
	return collectTerms(add.LHS, out) && collectTerms(add.RHS, out)
}

// LargestKnownDivisor 返回表达式所有可能取值的最大已知公约数
//
// 对求和项来说这就是它的系数：常量返回其绝对值，
// 常量乘法返回常量因子的绝对值，裸变量返回 1。
func LargestKnownDivisor(e Expr) int64 {
	switch n := e.(type) {
	case *Const:
		if n.Value == 0 {
			return 1
		}
		return absInt(n.Value)
	case *Mul:
		if c, ok := n.LHS.(*Const); ok && c.Value != 0 {
			return absInt(c.Value)
		}
		if c, ok := n.RHS.(*Const); ok && c.Value != 0 {
			return absInt(c.Value)
		}
	}
	return 1
}

// ============================================================================
// 项重排
// ============================================================================

// Term 一个求和项及其系数
//
// Expr 是完整的项（如 128*d0），Coeff 是它的最大已知公约数。
type Term struct {
	Coeff int64
	Expr  Expr
}

// Reorder 将线性表达式重排为「系数最小的项在最外层」的累加形式
//
// 先把所有项按系数从大到小稳定排序，再从最大项开始向右累加：
//
//	        +
//	      /   \
//	    +      最小系数项
//	  /   \
//	...     次小系数项
//
// 这样最外层 Add 的右操作数就是系数最小的项，而「其余所有更大
// 系数的项」恰好是左子树，可以逐层向内剥离。
//
// 返回重排后的表达式和按系数降序排列的项列表。
// 表达式不是线性或没有任何项时返回 (nil, nil, false)。
func Reorder(e Expr) (Expr, []Term, bool) {
	summands, ok := Terms(e)
	if !ok || len(summands) == 0 {
		return nil, nil, false
	}

	terms := make([]Term, 0, len(summands))
	for _, s := range summands {
		terms = append(terms, Term{Coeff: LargestKnownDivisor(s), Expr: s})
	}

	// 稳定排序，系数大的在前
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Coeff > terms[j].Coeff
	})

	acc := terms[0].Expr
	for i := 1; i < len(terms); i++ {
		acc = &Add{LHS: acc, RHS: terms[i].Expr}
	}
	return acc, terms, true
}

func absInt(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
