package affine

// ============================================================================
// GCD 阶梯
// ============================================================================

// GCDEntry 阶梯中的一级：分母与前 k 个系数的最大公约数，以及第 k 项
type GCDEntry struct {
	GCD  int64
	Term Expr
}

// SuffixGCDs 计算分母与系数前缀的逐级最大公约数
//
// 给定分母 d 和按降序排列的系数 c1 >= c2 >= ... >= cn，返回
// [gcd(d,c1), gcd(d,c1,c2), ..., gcd(d,c1,...,cn)] 及对应的项。
// 倒数第二级正是判断最小项能否删除的阈值：它是分母与所有
// 更大系数的公约数，即除法能分辨的最小单位。
func SuffixGCDs(denom int64, terms []Term) []GCDEntry {
	out := make([]GCDEntry, 0, len(terms))
	cur := denom
	for _, t := range terms {
		cur = gcd(cur, t.Coeff)
		out = append(out, GCDEntry{GCD: cur, Term: t.Expr})
	}
	return out
}

// gcd 欧几里得算法，结果非负
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
