// Package rangeval 实现整数范围分析
//
// 为 IR 中的每个值维护一个保守的闭区间 [Lo, Hi]，
// 供索引表达式化简判断某个求和项是否小到不影响结果。
// 区间只保证包含所有运行时取值，允许偏松，不允许偏紧。
package rangeval

import (
	"fmt"
	"math"
)

// ============================================================================
// 区间
// ============================================================================

// Range i64 值的闭区间 [Lo, Hi]
//
// unknown 表示分析无法给出任何界，所有保守判断都视其为失败。
type Range struct {
	Lo, Hi  int64
	unknown bool
}

// New 创建区间 [lo, hi]；lo > hi 违反区间契约，退化为未知
func New(lo, hi int64) Range {
	if lo > hi {
		return Unknown()
	}
	return Range{Lo: lo, Hi: hi}
}

// Single 单点区间 [v, v]
func Single(v int64) Range {
	return Range{Lo: v, Hi: v}
}

// Unknown 未知区间
func Unknown() Range {
	return Range{unknown: true}
}

// IsUnknown 是否未知
func (r Range) IsUnknown() bool { return r.unknown }

// Contains 区间是否包含 v
func (r Range) Contains(v int64) bool {
	return !r.unknown && r.Lo <= v && v <= r.Hi
}

func (r Range) String() string {
	if r.unknown {
		return "[?, ?]"
	}
	return fmt.Sprintf("[%d, %d]", r.Lo, r.Hi)
}

// ============================================================================
// 区间运算
// ============================================================================
//
// 所有运算都是饱和式的：一旦中间结果溢出 i64，直接退化为未知，
// 保证结论永远是保守的。
//
// ============================================================================

// Add 区间加法
func (r Range) Add(o Range) Range {
	if r.unknown || o.unknown {
		return Unknown()
	}
	lo, ok1 := addInt64(r.Lo, o.Lo)
	hi, ok2 := addInt64(r.Hi, o.Hi)
	if !ok1 || !ok2 {
		return Unknown()
	}
	return Range{Lo: lo, Hi: hi}
}

// Mul 区间乘法
func (r Range) Mul(o Range) Range {
	if r.unknown || o.unknown {
		return Unknown()
	}
	lo := int64(math.MaxInt64)
	hi := int64(math.MinInt64)
	for _, a := range [2]int64{r.Lo, r.Hi} {
		for _, b := range [2]int64{o.Lo, o.Hi} {
			p, ok := mulInt64(a, b)
			if !ok {
				return Unknown()
			}
			if p < lo {
				lo = p
			}
			if p > hi {
				hi = p
			}
		}
	}
	return Range{Lo: lo, Hi: hi}
}

// FloorDiv 区间向下取整除法，仅支持严格为正的除数区间
func (r Range) FloorDiv(o Range) Range {
	if r.unknown || o.unknown || o.Lo <= 0 {
		return Unknown()
	}
	lo := int64(math.MaxInt64)
	hi := int64(math.MinInt64)
	for _, a := range [2]int64{r.Lo, r.Hi} {
		for _, d := range [2]int64{o.Lo, o.Hi} {
			q := floorDiv(a, d)
			if q < lo {
				lo = q
			}
			if q > hi {
				hi = q
			}
		}
	}
	return Range{Lo: lo, Hi: hi}
}

// Mod 区间取模（floor 语义，结果落在 [0, 除数)），仅支持正除数
func (r Range) Mod(o Range) Range {
	if r.unknown || o.unknown || o.Lo <= 0 {
		return Unknown()
	}
	// 被除数本身落在 [0, 最小除数) 内时取模是恒等
	if r.Lo >= 0 && r.Hi < o.Lo {
		return r
	}
	return Range{Lo: 0, Hi: o.Hi - 1}
}

// SltAll 有符号严格小于：r 的所有取值是否都小于 o 的所有取值
//
// 任一侧未知都返回 false，对应「无法给界的项保守地保留」。
func (r Range) SltAll(o Range) bool {
	if r.unknown || o.unknown {
		return false
	}
	return r.Hi < o.Lo
}

// ============================================================================
// 溢出检查的标量运算
// ============================================================================

func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}

// floorDiv 向负无穷取整，要求 d > 0
func floorDiv(a, d int64) int64 {
	q := a / d
	if a%d != 0 && a < 0 {
		q--
	}
	return q
}
