package ir

import (
	"fmt"
	"strings"
)

// ============================================================================
// 文本输出
// ============================================================================
//
// 输出与 .kl 文本格式一致，经解析器可以还原。物化产生的
// ConstOp/BinOp 只在改写中途存在，打印为注释风格的内部形式，
// 正常流程在死操作清理后不会出现。
//
// ============================================================================

// String 输出整个模块
func (m *Module) String() string {
	var sb strings.Builder
	for i, f := range m.Funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		f.write(&sb)
	}
	return sb.String()
}

// String 输出单个函数
func (f *Func) String() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Func) write(sb *strings.Builder) {
	sb.WriteString("func ")
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	for i, s := range f.Symbols {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%s in [%d, %d)", s.Value, s.Lo, s.Hi)
	}
	sb.WriteString(") {\n")
	writeOps(sb, f.Body, 1)
	sb.WriteString("}\n")
}

func writeOps(sb *strings.Builder, ops []Op, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, op := range ops {
		switch o := op.(type) {
		case *ForOp:
			fmt.Fprintf(sb, "%sfor %s = %d to %d", indent, o.IV, o.Lower, o.Upper)
			if o.Step != 1 {
				fmt.Fprintf(sb, " step %d", o.Step)
			}
			sb.WriteString(" {\n")
			writeOps(sb, o.Body, depth+1)
			sb.WriteString(indent)
			sb.WriteString("}\n")
		case *LoadOp:
			writeAccess(sb, indent, "load", o)
		case *StoreOp:
			writeAccess(sb, indent, "store", o)
		case *ConstOp:
			fmt.Fprintf(sb, "%s// %s = const %d\n", indent, o.Result, o.Val)
		case *BinOp:
			fmt.Fprintf(sb, "%s// %s = %s %s, %s\n", indent, o.Result, o.Kind, o.LHS, o.RHS)
		}
	}
}

func writeAccess(sb *strings.Builder, indent, keyword string, op AccessOp) {
	m := op.IndexMap()
	operands := op.MapOperands()
	fmt.Fprintf(sb, "%s%s %s[%s](", indent, keyword, op.BufferName(), m)
	for i := 0; i < m.NumDims && i < len(operands); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(operands[i].String())
	}
	sb.WriteByte(')')
	if m.NumSyms > 0 {
		sb.WriteByte('[')
		for i := 0; i < m.NumSyms && m.NumDims+i < len(operands); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(operands[m.NumDims+i].String())
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
}
