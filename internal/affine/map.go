package affine

import (
	"fmt"
	"strings"
)

// ============================================================================
// 索引映射
// ============================================================================

// Map 索引映射：把固定数量的维度和符号变量映射为若干结果表达式
//
// 访存操作用它计算各维的下标。改写必须保持维度数、符号数
// 和结果数完全不变。
type Map struct {
	NumDims int
	NumSyms int
	Results []Expr
}

// NewMap 创建索引映射
func NewMap(numDims, numSyms int, results []Expr) Map {
	return Map{NumDims: numDims, NumSyms: numSyms, Results: results}
}

// ReplaceResults 用新的结果表达式构造映射，保持元数不变
//
// 结果数量不一致说明调用方违反了改写契约，返回错误。
func (m Map) ReplaceResults(results []Expr) (Map, error) {
	if len(results) != len(m.Results) {
		return Map{}, fmt.Errorf("index map must keep %d results, got %d", len(m.Results), len(results))
	}
	return Map{NumDims: m.NumDims, NumSyms: m.NumSyms, Results: results}, nil
}

// String 输出形如 (d0, d1)[s0] -> (expr, ...) 的文本形式
func (m Map) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < m.NumDims; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "d%d", i)
	}
	sb.WriteByte(')')
	if m.NumSyms > 0 {
		sb.WriteByte('[')
		for i := 0; i < m.NumSyms; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "s%d", i)
		}
		sb.WriteByte(']')
	}
	sb.WriteString(" -> (")
	for i, r := range m.Results {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
