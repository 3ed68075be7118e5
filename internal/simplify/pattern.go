// Package simplify 实现仿射索引映射的小项删除优化
//
// 针对形如 (sum) floordiv d 和 (sum) mod d 的子表达式（d 为正常量，
// sum 为线性组合），利用范围分析证明某些小系数项不可能影响结果，
// 并把它们从索引映射中删掉，得到完全等价但更便宜的表达式。
package simplify

import (
	"github.com/tangzhangming/kunlun/internal/ir"
	"github.com/tangzhangming/kunlun/internal/rangeval"
)

// Pattern 访存操作上的一种改写模式
//
// MatchAndRewrite 在不适用时返回 (false, nil)：形状不匹配是
// 正常结果而非错误。返回 true 表示索引映射已被整体替换。
type Pattern interface {
	Name() string
	MatchAndRewrite(b *ir.Builder, access ir.AccessOp, analysis *rangeval.Analysis) (bool, error)
}
